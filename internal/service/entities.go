package service

import "github.com/mistakeknot/hudu-mcp/internal/client"

// Verb is an operation on an entity.
type Verb string

const (
	VerbList      Verb = "list"
	VerbGet       Verb = "get"
	VerbCreate    Verb = "create"
	VerbUpdate    Verb = "update"
	VerbDelete    Verb = "delete"
	VerbArchive   Verb = "archive"
	VerbUnarchive Verb = "unarchive"
)

// Verbs lists every verb in catalog order.
var Verbs = []Verb{VerbList, VerbGet, VerbCreate, VerbUpdate, VerbDelete, VerbArchive, VerbUnarchive}

// Entity is a Hudu record type together with the verbs it supports.
type Entity struct {
	// Name is the snake_case singular used in tool names ("asset_layout").
	Name string
	// Collection is the snake_case plural used in list tool names.
	Collection string
	// Label is the human singular used in messages ("Asset layout").
	Label string
	// Noun is the human plural used in list messages ("asset layouts").
	Noun     string
	Endpoint client.Endpoint
	verbs    []Verb
}

// Supports reports whether v is allowed on the entity.
func (e Entity) Supports(v Verb) bool {
	for _, have := range e.verbs {
		if have == v {
			return true
		}
	}
	return false
}

// Verbs returns the supported verbs in catalog order.
func (e Entity) Verbs() []Verb {
	out := make([]Verb, 0, len(e.verbs))
	for _, v := range Verbs {
		if e.Supports(v) {
			out = append(out, v)
		}
	}
	return out
}

var listOnly = []Verb{VerbList}

// withVerbs is list/get/create/update plus extra.
func withVerbs(extra ...Verb) []Verb {
	return append([]Verb{VerbList, VerbGet, VerbCreate, VerbUpdate}, extra...)
}

var (
	Companies = Entity{
		Name: "company", Collection: "companies", Label: "Company", Noun: "companies",
		Endpoint: client.Companies, verbs: withVerbs(VerbDelete, VerbArchive, VerbUnarchive),
	}
	Assets = Entity{
		Name: "asset", Collection: "assets", Label: "Asset", Noun: "assets",
		Endpoint: client.Assets, verbs: withVerbs(VerbDelete, VerbArchive),
	}
	AssetLayouts = Entity{
		Name: "asset_layout", Collection: "asset_layouts", Label: "Asset layout", Noun: "asset layouts",
		Endpoint: client.AssetLayouts, verbs: withVerbs(),
	}
	AssetPasswords = Entity{
		Name: "asset_password", Collection: "asset_passwords", Label: "Asset password", Noun: "asset passwords",
		Endpoint: client.AssetPasswords, verbs: withVerbs(VerbDelete),
	}
	Articles = Entity{
		Name: "article", Collection: "articles", Label: "Article", Noun: "articles",
		Endpoint: client.Articles, verbs: withVerbs(VerbDelete, VerbArchive),
	}
	Websites = Entity{
		Name: "website", Collection: "websites", Label: "Website", Noun: "websites",
		Endpoint: client.Websites, verbs: withVerbs(VerbDelete),
	}
	Folders = Entity{
		Name: "folder", Collection: "folders", Label: "Folder", Noun: "folders",
		Endpoint: client.Folders, verbs: listOnly,
	}
	Procedures = Entity{
		Name: "procedure", Collection: "procedures", Label: "Procedure", Noun: "procedures",
		Endpoint: client.Procedures, verbs: listOnly,
	}
	ActivityLogs = Entity{
		Name: "activity_log", Collection: "activity_logs", Label: "Activity log", Noun: "activity logs",
		Endpoint: client.ActivityLogs, verbs: listOnly,
	}
	Relations = Entity{
		Name: "relation", Collection: "relations", Label: "Relation", Noun: "relations",
		Endpoint: client.Relations, verbs: listOnly,
	}
	MagicDash = Entity{
		Name: "magic_dash", Collection: "magic_dash", Label: "Magic Dash item", Noun: "Magic Dash items",
		Endpoint: client.MagicDash, verbs: listOnly,
	}
)

// Entities is every entity in catalog order.
var Entities = []Entity{
	Companies, Assets, AssetLayouts, AssetPasswords, Articles, Websites,
	Folders, Procedures, ActivityLogs, Relations, MagicDash,
}
