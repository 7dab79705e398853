package files

// Assets holds raw font overrides. Nil entries mean "use the embedded font".
type Assets struct {
	FontRegular    []byte
	FontBold       []byte
	FontItalic     []byte
	FontBoldItalic []byte
}
