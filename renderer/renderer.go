package renderer

import (
	"context"

	"github.com/ByLCY/mindexport/document"
)

// Renderer 将组装好的文档输出为最终文件，例如 SVG、PNG 或 PDF。
// Render 返回生成的二进制数据以及可能的错误。
type Renderer interface {
	Render(ctx context.Context, doc *document.Document) ([]byte, error)
	// MimeType of the bytes Render produces.
	MimeType() string
	// Extension is the file suffix including the dot, e.g. ".png".
	Extension() string
}
