package client

// Hudu collections exposed by the API.
var (
	Companies      = Endpoint{Path: "companies", SingularKey: "company", PluralKey: "companies"}
	Assets         = Endpoint{Path: "assets", SingularKey: "asset", PluralKey: "assets"}
	AssetLayouts   = Endpoint{Path: "asset_layouts", SingularKey: "asset_layout", PluralKey: "asset_layouts"}
	AssetPasswords = Endpoint{Path: "asset_passwords", SingularKey: "asset_password", PluralKey: "asset_passwords"}
	Articles       = Endpoint{Path: "articles", SingularKey: "article", PluralKey: "articles"}
	Websites       = Endpoint{Path: "websites", SingularKey: "website", PluralKey: "websites"}
	Folders        = Endpoint{Path: "folders", SingularKey: "folder", PluralKey: "folders"}
	Procedures     = Endpoint{Path: "procedures", SingularKey: "procedure", PluralKey: "procedures"}
	ActivityLogs   = Endpoint{Path: "activity_logs", SingularKey: "activity_log", PluralKey: "activity_logs"}
	Relations      = Endpoint{Path: "relations", SingularKey: "relation", PluralKey: "relations"}
	MagicDash      = Endpoint{Path: "magic_dash", SingularKey: "magic_dash_item", PluralKey: "magic_dash"}
)
