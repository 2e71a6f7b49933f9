package export

import "strings"

// NormalizeFormat coerces format values into known aliases.
func NormalizeFormat(format Format) Format {
	normalized := strings.ToLower(strings.TrimSpace(string(format)))
	switch normalized {
	case "jpg", string(FormatJPEG):
		return FormatJPEG
	case "htm", string(FormatHTML):
		return FormatHTML
	case "ppt", "powerpoint":
		return FormatPPTX
	default:
		return Format(normalized)
	}
}

// Extension returns the file extension for a format, without the dot.
func Extension(format Format) string {
	return string(NormalizeFormat(format))
}

func contentTypeForFormat(format Format) string {
	switch NormalizeFormat(format) {
	case FormatJPEG:
		return "image/jpeg"
	case FormatPNG:
		return "image/png"
	case FormatPDF:
		return "application/pdf"
	case FormatPPTX:
		return "application/vnd.openxmlformats-officedocument.presentationml.presentation"
	case FormatHTML:
		return "text/html"
	default:
		return "application/octet-stream"
	}
}
