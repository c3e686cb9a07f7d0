// Package markdownbuilder implements the Markdown annotated-text builder: a
// position-reconstructing walk over a github.com/gomarkdown/markdown AST,
// classifying nodes into prose, markup, or dummy per an ancestor-aware node
// kind registry, per spec §4.4. The walk itself follows the same
// type-switch-over-ast.Node idiom as the teacher's own
// internal/markdown.GenerateLatexFromAST, run in the opposite direction.
package markdownbuilder

import mdast "github.com/gomarkdown/markdown/ast"

// Kind identifies a markdown AST node's classification. Unlike LaTeX
// commands, markdown node kinds are closed (one per ast.Node Go type), so
// Kind is just a name for settings lookup rather than a parsed pattern.
type Kind string

const (
	KindDocument       Kind = "document"
	KindText           Kind = "text"
	KindParagraph      Kind = "paragraph"
	KindHeading        Kind = "heading"
	KindEmph           Kind = "emph"
	KindStrong         Kind = "strong"
	KindLink           Kind = "link"
	KindImage          Kind = "image"
	KindList           Kind = "list"
	KindListItem       Kind = "listitem"
	KindBlockQuote     Kind = "blockquote"
	KindCode           Kind = "code"
	KindCodeBlock      Kind = "codeblock"
	KindHTMLBlock      Kind = "htmlblock"
	KindHTMLSpan       Kind = "htmlspan"
	KindMath           Kind = "math"
	KindMathBlock      Kind = "mathblock"
	KindHorizontalRule Kind = "horizontalrule"
	KindTable          Kind = "table"
	KindTableCell      Kind = "tablecell"
	KindTableHeader    Kind = "tableheader"
	KindTableRow       Kind = "tablerow"
	KindSoftbreak      Kind = "softbreak"
	KindHardbreak      Kind = "hardbreak"
	KindOther          Kind = "other"
)

// kindOf classifies a node by its concrete Go type.
func kindOf(node mdast.Node) Kind {
	switch node.(type) {
	case *mdast.Document:
		return KindDocument
	case *mdast.Text:
		return KindText
	case *mdast.Paragraph:
		return KindParagraph
	case *mdast.Heading:
		return KindHeading
	case *mdast.Emph:
		return KindEmph
	case *mdast.Strong:
		return KindStrong
	case *mdast.Link:
		return KindLink
	case *mdast.Image:
		return KindImage
	case *mdast.List:
		return KindList
	case *mdast.ListItem:
		return KindListItem
	case *mdast.BlockQuote:
		return KindBlockQuote
	case *mdast.Code:
		return KindCode
	case *mdast.CodeBlock:
		return KindCodeBlock
	case *mdast.HTMLBlock:
		return KindHTMLBlock
	case *mdast.HTMLSpan:
		return KindHTMLSpan
	case *mdast.Math:
		return KindMath
	case *mdast.MathBlock:
		return KindMathBlock
	case *mdast.HorizontalRule:
		return KindHorizontalRule
	case *mdast.Table:
		return KindTable
	case *mdast.TableCell:
		return KindTableCell
	case *mdast.TableHeader:
		return KindTableHeader
	case *mdast.TableRow:
		return KindTableRow
	case *mdast.Softbreak:
		return KindSoftbreak
	case *mdast.Hardbreak:
		return KindHardbreak
	default:
		return KindOther
	}
}

// leafLiteral returns a node's raw source bytes if it is a leaf, per the
// gomarkdown ast.Node.AsLeaf() contract.
func leafLiteral(node mdast.Node) ([]byte, bool) {
	leaf := node.AsLeaf()
	if leaf == nil {
		return nil, false
	}
	return leaf.Literal, true
}
