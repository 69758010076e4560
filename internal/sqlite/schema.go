package sqlite

// Schema DDL. Five tables: databases, their property columns, pages (both
// documents and database rows), cell values, and saved views.
//
// pages.parent_id deliberately carries no foreign key: it targets either
// databases or pages depending on parent_type, so referential consistency
// is checked at the access layer and the database-to-row cascade is done
// explicitly in DeleteDatabase.
const (
	createDatabases = `CREATE TABLE IF NOT EXISTS databases (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL DEFAULT 'Untitled',
    icon TEXT,
    cover_url TEXT,
    parent_page_id TEXT,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);`

	createProperties = `CREATE TABLE IF NOT EXISTS database_properties (
    id TEXT PRIMARY KEY,
    database_id TEXT NOT NULL,
    name TEXT NOT NULL,
    type TEXT NOT NULL,
    config TEXT NOT NULL DEFAULT '{}',
    order_index INTEGER NOT NULL,
    visible INTEGER NOT NULL DEFAULT 1,
    created_at INTEGER NOT NULL,
    FOREIGN KEY (database_id) REFERENCES databases(id) ON DELETE CASCADE
);`

	createPages = `CREATE TABLE IF NOT EXISTS pages (
    id TEXT PRIMARY KEY,
    parent_id TEXT,
    parent_type TEXT CHECK(parent_type IN ('database', 'page')),
    title TEXT NOT NULL DEFAULT 'Untitled',
    icon TEXT,
    cover_image TEXT,
    content TEXT NOT NULL DEFAULT '[]',
    is_archived INTEGER NOT NULL DEFAULT 0,
    is_favorite INTEGER NOT NULL DEFAULT 0,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);`

	createPageProperties = `CREATE TABLE IF NOT EXISTS page_properties (
    id TEXT PRIMARY KEY,
    page_id TEXT NOT NULL,
    property_id TEXT NOT NULL,
    value TEXT NOT NULL,
    FOREIGN KEY (page_id) REFERENCES pages(id) ON DELETE CASCADE,
    FOREIGN KEY (property_id) REFERENCES database_properties(id) ON DELETE CASCADE,
    UNIQUE(page_id, property_id)
);`

	createViews = `CREATE TABLE IF NOT EXISTS database_views (
    id TEXT PRIMARY KEY,
    database_id TEXT NOT NULL,
    name TEXT NOT NULL,
    type TEXT NOT NULL,
    config TEXT NOT NULL DEFAULT '{}',
    order_index INTEGER NOT NULL,
    created_at INTEGER NOT NULL,
    FOREIGN KEY (database_id) REFERENCES databases(id) ON DELETE CASCADE
);`
)

// Index DDL for the common lookups.
const (
	idxPropertyDB   = `CREATE INDEX IF NOT EXISTS idx_property_db_id ON database_properties(database_id);`
	idxPageParent   = `CREATE INDEX IF NOT EXISTS idx_page_parent ON pages(parent_id);`
	idxValuePage    = `CREATE INDEX IF NOT EXISTS idx_prop_val_page ON page_properties(page_id);`
	idxValueProp    = `CREATE INDEX IF NOT EXISTS idx_prop_val_property ON page_properties(property_id);`
	idxViewDB       = `CREATE INDEX IF NOT EXISTS idx_view_db ON database_views(database_id);`
	idxPageArchived = `CREATE INDEX IF NOT EXISTS idx_page_archived ON pages(is_archived);`
)

// migrations lists schema generations in order. PRAGMA user_version records
// how many have been applied; each generation runs inside one transaction
// so a partially created schema is never observable.
var migrations = [][]string{
	{
		createDatabases,
		createProperties,
		createPages,
		createPageProperties,
		createViews,
		idxPropertyDB,
		idxPageParent,
		idxValuePage,
		idxValueProp,
		idxViewDB,
		idxPageArchived,
	},
}
