package tools

import (
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mistakeknot/hudu-mcp/internal/service"
)

// TestConnectionTool is the one tool not tied to an entity verb.
const TestConnectionTool = "hudu_test_connection"

type fieldKind int

const (
	kindString fieldKind = iota
	kindNumber
	kindBoolean
	kindObject
	kindArray
)

type field struct {
	name     string
	kind     fieldKind
	desc     string
	required bool
}

func str(name, desc string) field  { return field{name: name, kind: kindString, desc: desc} }
func num(name, desc string) field  { return field{name: name, kind: kindNumber, desc: desc} }
func flag(name, desc string) field { return field{name: name, kind: kindBoolean, desc: desc} }

func (f field) req() field {
	f.required = true
	return f
}

// entitySchema is the tool-facing description of one entity.
type entitySchema struct {
	entity  service.Entity
	idDesc  string
	descs   map[service.Verb]string
	filters []field
	create  []field
	update  []field
}

// ToolName is the MCP tool name for an entity verb.
func ToolName(e service.Entity, v service.Verb) string {
	if v == service.VerbList {
		return "hudu_list_" + e.Collection
	}
	return "hudu_" + string(v) + "_" + e.Name
}

var companyFields = []field{
	str("nickname", "Company nickname"),
	str("company_type", "Company type"),
	str("address_line_1", "Address line 1"),
	str("address_line_2", "Address line 2"),
	str("city", "City"),
	str("state", "State"),
	str("zip", "ZIP code"),
	str("country_name", "Country name"),
	str("phone_number", "Phone number"),
	str("fax_number", "Fax number"),
	str("website", "Website URL"),
	str("id_number", "ID number"),
	str("notes", "Notes"),
	num("parent_company_id", "Parent company ID"),
}

var assetDetailFields = []field{
	str("primary_serial", "Serial number"),
	str("primary_model", "Model"),
	str("primary_manufacturer", "Manufacturer"),
	str("primary_mail", "Email"),
	{name: "custom_fields", kind: kindObject, desc: "Custom field values"},
}

var layoutFields = []field{
	str("icon", "Icon"),
	str("color", "Color"),
	str("icon_color", "Icon color"),
	flag("include_passwords", "Include passwords"),
	flag("include_photos", "Include photos"),
	flag("include_comments", "Include comments"),
	flag("include_files", "Include files"),
	flag("active", "Active status"),
	{name: "fields", kind: kindArray, desc: "Layout fields"},
}

var passwordFields = []field{
	str("username", "Username"),
	str("password", "Password value"),
	str("otp_secret", "OTP secret"),
	str("url", "URL"),
	str("password_type", "Password type"),
	str("description", "Description"),
}

var articleFields = []field{
	str("content", "Article content (HTML)"),
	num("folder_id", "Folder ID"),
	num("company_id", "Company ID"),
	flag("enable_sharing", "Enable sharing"),
	flag("draft", "Draft status"),
}

var websiteFields = []field{
	str("url", "Website URL"),
	str("notes", "Notes"),
	flag("paused", "Paused status"),
	num("company_id", "Company ID"),
	flag("disable_dns", "Disable DNS monitoring"),
	flag("disable_ssl", "Disable SSL monitoring"),
	flag("disable_whois", "Disable WHOIS monitoring"),
}

func concat(parts ...[]field) []field {
	var out []field
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

var schemas = []entitySchema{
	{
		entity: service.Companies,
		idDesc: "Company ID",
		descs: map[service.Verb]string{
			service.VerbList:      "List companies in Hudu with optional filters",
			service.VerbGet:       "Get a company by ID",
			service.VerbCreate:    "Create a new company in Hudu",
			service.VerbUpdate:    "Update an existing company in Hudu",
			service.VerbDelete:    "Delete a company in Hudu",
			service.VerbArchive:   "Archive a company in Hudu",
			service.VerbUnarchive: "Unarchive a company in Hudu",
		},
		filters: []field{
			str("name", "Filter by company name"),
			str("id_number", "Filter by ID number"),
			str("website", "Filter by website"),
			str("phone_number", "Filter by phone number"),
			str("city", "Filter by city"),
			str("state", "Filter by state"),
			flag("archived", "Filter by archived status"),
		},
		create: concat([]field{str("name", "Company name (required)").req()}, companyFields),
		update: concat([]field{str("name", "Company name")}, companyFields),
	},
	{
		entity: service.Assets,
		idDesc: "Asset ID",
		descs: map[service.Verb]string{
			service.VerbList:    "List assets in Hudu with optional filters",
			service.VerbGet:     "Get an asset by ID",
			service.VerbCreate:  "Create a new asset in Hudu",
			service.VerbUpdate:  "Update an existing asset in Hudu",
			service.VerbDelete:  "Delete an asset in Hudu",
			service.VerbArchive: "Archive an asset in Hudu",
		},
		filters: []field{
			num("company_id", "Filter by company ID"),
			num("asset_layout_id", "Filter by asset layout ID"),
			str("name", "Filter by name"),
			str("primary_serial", "Filter by serial number"),
			flag("archived", "Filter by archived status"),
		},
		create: concat([]field{
			num("company_id", "Company ID (required)").req(),
			num("asset_layout_id", "Asset layout ID (required)").req(),
			str("name", "Asset name (required)").req(),
		}, assetDetailFields),
		update: concat([]field{
			str("name", "Asset name"),
			num("company_id", "Company ID"),
			num("asset_layout_id", "Asset layout ID"),
		}, assetDetailFields),
	},
	{
		entity: service.AssetLayouts,
		idDesc: "Asset layout ID",
		descs: map[service.Verb]string{
			service.VerbList:   "List asset layouts in Hudu",
			service.VerbGet:    "Get an asset layout by ID",
			service.VerbCreate: "Create a new asset layout in Hudu",
			service.VerbUpdate: "Update an existing asset layout in Hudu",
		},
		filters: []field{str("name", "Filter by name")},
		create:  concat([]field{str("name", "Layout name (required)").req()}, layoutFields),
		update:  concat([]field{str("name", "Layout name")}, layoutFields),
	},
	{
		entity: service.AssetPasswords,
		idDesc: "Asset password ID",
		descs: map[service.Verb]string{
			service.VerbList:   "List asset passwords in Hudu",
			service.VerbGet:    "Get an asset password by ID",
			service.VerbCreate: "Create a new asset password in Hudu",
			service.VerbUpdate: "Update an existing asset password in Hudu",
			service.VerbDelete: "Delete an asset password in Hudu",
		},
		filters: []field{
			num("company_id", "Filter by company ID"),
			str("name", "Filter by name"),
			str("search", "Search term"),
		},
		create: concat([]field{
			num("company_id", "Company ID (required)").req(),
			str("name", "Password name (required)").req(),
		}, passwordFields, []field{
			str("passwordable_type", "Passwordable type"),
			num("passwordable_id", "Passwordable ID"),
			flag("in_portal", "Show in portal"),
			num("password_folder_id", "Password folder ID"),
		}),
		update: concat([]field{str("name", "Password name")}, passwordFields),
	},
	{
		entity: service.Articles,
		idDesc: "Article ID",
		descs: map[service.Verb]string{
			service.VerbList:    "List knowledge base articles in Hudu",
			service.VerbGet:     "Get a knowledge base article by ID",
			service.VerbCreate:  "Create a new knowledge base article in Hudu",
			service.VerbUpdate:  "Update an existing knowledge base article in Hudu",
			service.VerbDelete:  "Delete a knowledge base article in Hudu",
			service.VerbArchive: "Archive a knowledge base article in Hudu",
		},
		filters: []field{
			num("company_id", "Filter by company ID"),
			str("name", "Filter by name"),
			flag("draft", "Filter by draft status"),
		},
		create: concat([]field{str("name", "Article name (required)").req()}, articleFields),
		update: concat([]field{str("name", "Article name")}, articleFields),
	},
	{
		entity: service.Websites,
		idDesc: "Website ID",
		descs: map[service.Verb]string{
			service.VerbList:   "List monitored websites in Hudu",
			service.VerbGet:    "Get a website by ID",
			service.VerbCreate: "Create a new website in Hudu",
			service.VerbUpdate: "Update an existing website in Hudu",
			service.VerbDelete: "Delete a website in Hudu",
		},
		filters: []field{
			str("name", "Filter by name"),
			num("company_id", "Filter by company ID"),
		},
		create: concat([]field{str("name", "Website name (required)").req()}, websiteFields),
		update: concat([]field{str("name", "Website name")}, websiteFields),
	},
	{
		entity: service.Folders,
		descs:  map[service.Verb]string{service.VerbList: "List folders in Hudu"},
		filters: []field{
			num("company_id", "Filter by company ID"),
			str("name", "Filter by name"),
		},
	},
	{
		entity: service.Procedures,
		descs:  map[service.Verb]string{service.VerbList: "List procedures in Hudu"},
		filters: []field{
			num("company_id", "Filter by company ID"),
			str("name", "Filter by name"),
		},
	},
	{
		entity: service.ActivityLogs,
		descs:  map[service.Verb]string{service.VerbList: "List activity logs in Hudu"},
		filters: []field{
			num("user_id", "Filter by user ID"),
			str("user_email", "Filter by user email"),
			num("resource_id", "Filter by resource ID"),
			str("resource_type", "Filter by resource type"),
			str("action_message", "Filter by action message"),
			str("start_date", "Filter by start date (ISO format)"),
		},
	},
	{
		entity: service.Relations,
		descs:  map[service.Verb]string{service.VerbList: "List relations in Hudu"},
	},
	{
		entity: service.MagicDash,
		descs:  map[service.Verb]string{service.VerbList: "List Magic Dash items in Hudu"},
		filters: []field{
			num("company_id", "Filter by company ID"),
			str("title", "Filter by title"),
		},
	},
}

var paginationFields = []field{
	num("page", "Page number"),
	num("page_size", "Results per page"),
}

// fieldsFor returns the input fields of an entity verb.
func (s entitySchema) fieldsFor(v service.Verb) []field {
	idField := num("id", s.idDesc).req()
	switch v {
	case service.VerbList:
		return concat(paginationFields, s.filters)
	case service.VerbCreate:
		return s.create
	case service.VerbUpdate:
		return concat([]field{idField}, s.update)
	default:
		return []field{idField}
	}
}

// requiredFields lists the names marked required for a verb.
func (s entitySchema) requiredFields(v service.Verb) []string {
	var out []string
	for _, f := range s.fieldsFor(v) {
		if f.required {
			out = append(out, f.name)
		}
	}
	return out
}

func newTool(name, desc string, fields []field) mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(desc)}
	for _, f := range fields {
		props := []mcp.PropertyOption{mcp.Description(f.desc)}
		if f.required {
			props = append(props, mcp.Required())
		}
		switch f.kind {
		case kindString:
			opts = append(opts, mcp.WithString(f.name, props...))
		case kindNumber:
			opts = append(opts, mcp.WithNumber(f.name, props...))
		case kindBoolean:
			opts = append(opts, mcp.WithBoolean(f.name, props...))
		case kindObject:
			opts = append(opts, mcp.WithObject(f.name, props...))
		case kindArray:
			props = append(props, mcp.Items(map[string]any{"type": "object"}))
			opts = append(opts, mcp.WithArray(f.name, props...))
		}
	}
	return mcp.NewTool(name, opts...)
}
