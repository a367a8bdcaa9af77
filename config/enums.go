package config

// Specification of the durable progress store backend.
// ENUM(sqlite, json)
type StoreKind int

// Ext returns the conventional file extension for the backend's state file.
func (k StoreKind) Ext() string {
	switch k {
	case StoreKindSqlite:
		return ".db"
	case StoreKindJson:
		return ".json"
	default:
		// this should never happen
		panic("unsupported progress store requested")
	}
}
