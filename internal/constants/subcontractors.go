package constants

// Subcontractors are the design partners offered for the Stand and Guide
// assignments when the directory is empty.
var Subcontractors = []string{
	"PAP",
	"Y・Gテック",
	"ヒラテ技研（近江八幡メンバー）",
	"ヒラテ技研（請負メンバー）",
	"DSE",
	"ユニテツク",
	"タイガ設計",
	"中央エンジ",
}

const (
	MimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// UploadExtensions are the accepted specification list formats.
var UploadExtensions = map[string]bool{
	".xlsx": true,
	".xlsm": true,
}
