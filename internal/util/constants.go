package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

const (
	DatabaseMySQL  = "mysql"
	DatabaseSQLite = "sqlite"
)

// 验证报告归档相关常量
const (
	ReportPrefix      = "validation-reports"
	MimeJSON          = "application/json"
	MaxQuestionsBatch = 200
)
