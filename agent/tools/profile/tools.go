package profile

import (
	"github.com/abdusubhan/ask-agent/agent/tools"
)

// Fact binds a tool name and description to one of the fixed facts.
type Fact struct {
	Name        string
	Description string
	Text        func() string
}

// Facts lists every fact in the order it is offered to the model.
var Facts = []Fact{
	{"get_contact_info", "Get contact details for Abdu Subhan: email, GitHub and portfolio contact form.", ContactInfo},
	{"get_current_work", "Get where Abdu Subhan currently works and what kind of work he is open to.", CurrentWork},
	{"get_location", "Get where Abdu Subhan is based and his availability for remote work.", Location},
	{"get_bio", "Get a short biography of Abdu Subhan.", Bio},
	{"get_skill", "Get Abdu Subhan's technical skillset (frontend, backend, database, animation, tools).", Skills},
	{"get_experience", "Get Abdu Subhan's professional experience.", Experience},
	{"get_education", "Get Abdu Subhan's education and training.", Education},
	{"get_projects", "Get a list of projects built by Abdu Subhan with links.", Projects},
}

// Tool exposes the fact as a tool that takes no arguments.
func (f Fact) Tool() tools.Tool {
	return tools.New(
		f.Name,
		tools.Static(f.Text()),
		tools.WithDescription(f.Description),
		tools.WithParameters(tools.EmptySchema()),
	)
}

// Tools returns all eight knowledge tools.
func Tools() []tools.Tool {
	items := make([]tools.Tool, 0, len(Facts))
	for _, f := range Facts {
		items = append(items, f.Tool())
	}
	return items
}
