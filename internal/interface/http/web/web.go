// Package web 浏览器页面模板
package web

import (
	"embed"
	"html/template"

	"github.com/shopspring/decimal"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates 解析内嵌模板，模板名即文件名（books.html、error.html…）
func Templates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"price": func(d decimal.Decimal) string { return d.StringFixed(2) },
	}).ParseFS(templateFS, "templates/*.html")
}

// MustTemplates 解析失败时panic（模板随二进制发布，失败即编码错误）
func MustTemplates() *template.Template {
	return template.Must(Templates())
}
