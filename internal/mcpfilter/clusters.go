package mcpfilter

const (
	ClusterRead        Cluster = "read"
	ClusterWrite       Cluster = "write"
	ClusterDestructive Cluster = "destructive"
)

// ToolClusters maps each Hudu tool to its cluster.
var ToolClusters = map[string]Cluster{
	"hudu_test_connection": ClusterRead,

	"hudu_list_companies":    ClusterRead,
	"hudu_get_company":       ClusterRead,
	"hudu_create_company":    ClusterWrite,
	"hudu_update_company":    ClusterWrite,
	"hudu_delete_company":    ClusterDestructive,
	"hudu_archive_company":   ClusterDestructive,
	"hudu_unarchive_company": ClusterDestructive,

	"hudu_list_assets":   ClusterRead,
	"hudu_get_asset":     ClusterRead,
	"hudu_create_asset":  ClusterWrite,
	"hudu_update_asset":  ClusterWrite,
	"hudu_delete_asset":  ClusterDestructive,
	"hudu_archive_asset": ClusterDestructive,

	"hudu_list_asset_layouts":  ClusterRead,
	"hudu_get_asset_layout":    ClusterRead,
	"hudu_create_asset_layout": ClusterWrite,
	"hudu_update_asset_layout": ClusterWrite,

	"hudu_list_asset_passwords":  ClusterRead,
	"hudu_get_asset_password":    ClusterRead,
	"hudu_create_asset_password": ClusterWrite,
	"hudu_update_asset_password": ClusterWrite,
	"hudu_delete_asset_password": ClusterDestructive,

	"hudu_list_articles":   ClusterRead,
	"hudu_get_article":     ClusterRead,
	"hudu_create_article":  ClusterWrite,
	"hudu_update_article":  ClusterWrite,
	"hudu_delete_article":  ClusterDestructive,
	"hudu_archive_article": ClusterDestructive,

	"hudu_list_websites":  ClusterRead,
	"hudu_get_website":    ClusterRead,
	"hudu_create_website": ClusterWrite,
	"hudu_update_website": ClusterWrite,
	"hudu_delete_website": ClusterDestructive,

	"hudu_list_folders":       ClusterRead,
	"hudu_list_procedures":    ClusterRead,
	"hudu_list_activity_logs": ClusterRead,
	"hudu_list_relations":     ClusterRead,
	"hudu_list_magic_dash":    ClusterRead,
}

// ProfileClusters defines which clusters are included in each non-full profile.
var ProfileClusters = map[Profile][]Cluster{
	ProfileStandard: {ClusterRead, ClusterWrite},
	ProfileReadOnly: {ClusterRead},
}
