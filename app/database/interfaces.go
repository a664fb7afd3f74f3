package database

type ImportRepository interface {
	RecordImport(imp Import, events []Event) (int64, error)
	GetImportCount() (int, error)
	GetEventCount() (int, error)
	GetRecentImports(limit int) ([]Import, error)
}
