package styles

// Tip: To find icons use https://github.com/loichyan/nerdfix

var (
	IconDocument  = "" // 
	IconClause    = "" // 
	IconFlag      = "" // 
	IconCheck     = "" // 
	IconTranslate = "\U000F05CA" // 󰗊
	IconPlay      = "" // 
	IconPause     = "" // 
	IconChat      = "" // 
	IconWarning   = "" // 
)
