// Package migrations goose SQL迁移脚本（按方言分目录）
package migrations

import "embed"

// FS 内嵌的迁移脚本，目录名与database.driver一致（mysql、postgres）
//
//go:embed mysql/*.sql postgres/*.sql
var FS embed.FS
