package web

// Route maps a path to the page rendered for it
type Route struct {
	Path  string
	Page  string
	Title string
}

// Routes is the shell's route table
var Routes = []Route{
	{Path: "/", Page: PageHome, Title: "LightPath"},

	// Planned, not yet implemented:
	// {Path: "/login"}
	// {Path: "/register"}
	// {Path: "/dashboard"}
	// {Path: "/chat"}
	// {Path: "/quests"}
	// {Path: "/profile"}
}
