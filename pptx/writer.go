package pptx

import (
	"archive/zip"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const (
	relsNS    = "http://schemas.openxmlformats.org/package/2006/relationships"
	relTypeNS = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"

	contentTypePresentation = "application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"
	contentTypeSlide        = "application/vnd.openxmlformats-officedocument.presentationml.slide+xml"
	contentTypeSlideMaster  = "application/vnd.openxmlformats-officedocument.presentationml.slideMaster+xml"
	contentTypeSlideLayout  = "application/vnd.openxmlformats-officedocument.presentationml.slideLayout+xml"
	contentTypeTheme        = "application/vnd.openxmlformats-officedocument.theme+xml"
	contentTypeChart        = "application/vnd.openxmlformats-officedocument.drawingml.chart+xml"
)

// Write serializes the deck as a .pptx package.
func (d *Deck) Write(w io.Writer) error {
	archive := zip.NewWriter(w)

	chartCount := 0
	parts := []struct {
		name string
		data string
	}{
		{"[Content_Types].xml", d.contentTypesXML()},
		{"_rels/.rels", rootRelsXML()},
		{"ppt/presentation.xml", d.presentationXML()},
		{"ppt/_rels/presentation.xml.rels", d.presentationRelsXML()},
		{"ppt/slideMasters/slideMaster1.xml", slideMasterXML()},
		{"ppt/slideMasters/_rels/slideMaster1.xml.rels", slideMasterRelsXML()},
		{"ppt/slideLayouts/slideLayout1.xml", slideLayoutXML()},
		{"ppt/slideLayouts/_rels/slideLayout1.xml.rels", slideLayoutRelsXML()},
		{"ppt/theme/theme1.xml", themeXML()},
	}

	for i, slide := range d.slides {
		slideCharts := slide.Charts()
		slideXML, rels := slideParts(slide, chartCount)
		parts = append(parts,
			struct {
				name string
				data string
			}{fmt.Sprintf("ppt/slides/slide%d.xml", i+1), slideXML},
			struct {
				name string
				data string
			}{fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", i+1), rels},
		)
		for j, chart := range slideCharts {
			parts = append(parts, struct {
				name string
				data string
			}{fmt.Sprintf("ppt/charts/chart%d.xml", chartCount+j+1), chartXML(chart)})
		}
		chartCount += len(slideCharts)
	}

	for _, part := range parts {
		entry, err := archive.Create(part.name)
		if err != nil {
			return fmt.Errorf("pptx: create %s: %w", part.name, err)
		}
		if _, err := io.WriteString(entry, part.data); err != nil {
			return fmt.Errorf("pptx: write %s: %w", part.name, err)
		}
	}

	return archive.Close()
}

func (d *Deck) contentTypesXML() string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">`)
	b.WriteString(`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>`)
	b.WriteString(`<Default Extension="xml" ContentType="application/xml"/>`)
	override(&b, "/ppt/presentation.xml", contentTypePresentation)
	override(&b, "/ppt/slideMasters/slideMaster1.xml", contentTypeSlideMaster)
	override(&b, "/ppt/slideLayouts/slideLayout1.xml", contentTypeSlideLayout)
	override(&b, "/ppt/theme/theme1.xml", contentTypeTheme)
	chartCount := 0
	for i, slide := range d.slides {
		override(&b, fmt.Sprintf("/ppt/slides/slide%d.xml", i+1), contentTypeSlide)
		for range slide.charts {
			chartCount++
			override(&b, fmt.Sprintf("/ppt/charts/chart%d.xml", chartCount), contentTypeChart)
		}
	}
	b.WriteString(`</Types>`)
	return b.String()
}

func override(b *strings.Builder, partName, contentType string) {
	fmt.Fprintf(b, `<Override PartName="%s" ContentType="%s"/>`, partName, contentType)
}

func rootRelsXML() string {
	return xmlHeader +
		`<Relationships xmlns="` + relsNS + `">` +
		`<Relationship Id="rId1" Type="` + relTypeNS + `/officeDocument" Target="ppt/presentation.xml"/>` +
		`</Relationships>`
}

func (d *Deck) presentationXML() string {
	cx := inchesToEMU(SlideWidth)
	cy := inchesToEMU(SlideHeight)

	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<p:presentation xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="` + relTypeNS + `" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main">`)
	b.WriteString(`<p:sldMasterIdLst><p:sldMasterId id="2147483648" r:id="rId1"/></p:sldMasterIdLst>`)
	b.WriteString(`<p:sldIdLst>`)
	for i := range d.slides {
		fmt.Fprintf(&b, `<p:sldId id="%d" r:id="rId%d"/>`, 256+i, i+2)
	}
	b.WriteString(`</p:sldIdLst>`)
	fmt.Fprintf(&b, `<p:sldSz cx="%d" cy="%d"/>`, cx, cy)
	fmt.Fprintf(&b, `<p:notesSz cx="%d" cy="%d"/>`, cy, cx)
	b.WriteString(`</p:presentation>`)
	return b.String()
}

func (d *Deck) presentationRelsXML() string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<Relationships xmlns="` + relsNS + `">`)
	b.WriteString(`<Relationship Id="rId1" Type="` + relTypeNS + `/slideMaster" Target="slideMasters/slideMaster1.xml"/>`)
	for i := range d.slides {
		fmt.Fprintf(&b, `<Relationship Id="rId%d" Type="%s/slide" Target="slides/slide%d.xml"/>`, i+2, relTypeNS, i+1)
	}
	b.WriteString(`</Relationships>`)
	return b.String()
}

func slideMasterXML() string {
	return xmlHeader +
		`<p:sldMaster xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="` + relTypeNS + `" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main">` +
		`<p:cSld><p:spTree>` + emptyGroupShape + `</p:spTree></p:cSld>` +
		`<p:clrMap bg1="lt1" tx1="dk1" bg2="lt2" tx2="dk2" accent1="accent1" accent2="accent2" accent3="accent3" accent4="accent4" accent5="accent5" accent6="accent6" hlink="hlink" folHlink="folHlink"/>` +
		`<p:sldLayoutIdLst><p:sldLayoutId id="2147483649" r:id="rId1"/></p:sldLayoutIdLst>` +
		`</p:sldMaster>`
}

func slideMasterRelsXML() string {
	return xmlHeader +
		`<Relationships xmlns="` + relsNS + `">` +
		`<Relationship Id="rId1" Type="` + relTypeNS + `/slideLayout" Target="../slideLayouts/slideLayout1.xml"/>` +
		`<Relationship Id="rId2" Type="` + relTypeNS + `/theme" Target="../theme/theme1.xml"/>` +
		`</Relationships>`
}

func slideLayoutXML() string {
	return xmlHeader +
		`<p:sldLayout xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="` + relTypeNS + `" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main" type="blank">` +
		`<p:cSld><p:spTree>` + emptyGroupShape + `</p:spTree></p:cSld>` +
		`<p:clrMapOvr><a:overrideClrMapping bg1="lt1" tx1="dk1" bg2="lt2" tx2="dk2" accent1="accent1" accent2="accent2" accent3="accent3" accent4="accent4" accent5="accent5" accent6="accent6" hlink="hlink" folHlink="folHlink"/></p:clrMapOvr>` +
		`</p:sldLayout>`
}

func slideLayoutRelsXML() string {
	return xmlHeader +
		`<Relationships xmlns="` + relsNS + `">` +
		`<Relationship Id="rId1" Type="` + relTypeNS + `/slideMaster" Target="../slideMasters/slideMaster1.xml"/>` +
		`</Relationships>`
}

// themeXML emits the smallest theme part readers accept: a color scheme,
// a font scheme, and a format scheme with one entry per required list.
func themeXML() string {
	const a = `xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"`
	return xmlHeader +
		`<a:theme ` + a + ` name="Office"><a:themeElements>` +
		`<a:clrScheme name="Office">` +
		`<a:dk1><a:srgbClr val="000000"/></a:dk1><a:lt1><a:srgbClr val="FFFFFF"/></a:lt1>` +
		`<a:dk2><a:srgbClr val="44546A"/></a:dk2><a:lt2><a:srgbClr val="E7E6E6"/></a:lt2>` +
		`<a:accent1><a:srgbClr val="4472C4"/></a:accent1><a:accent2><a:srgbClr val="ED7D31"/></a:accent2>` +
		`<a:accent3><a:srgbClr val="A5A5A5"/></a:accent3><a:accent4><a:srgbClr val="FFC000"/></a:accent4>` +
		`<a:accent5><a:srgbClr val="5B9BD5"/></a:accent5><a:accent6><a:srgbClr val="70AD47"/></a:accent6>` +
		`<a:hlink><a:srgbClr val="0563C1"/></a:hlink><a:folHlink><a:srgbClr val="954F72"/></a:folHlink>` +
		`</a:clrScheme>` +
		`<a:fontScheme name="Office">` +
		`<a:majorFont><a:latin typeface="Calibri Light"/><a:ea typeface=""/><a:cs typeface=""/></a:majorFont>` +
		`<a:minorFont><a:latin typeface="Calibri"/><a:ea typeface=""/><a:cs typeface=""/></a:minorFont>` +
		`</a:fontScheme>` +
		`<a:fmtScheme name="Office">` +
		`<a:fillStyleLst><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:fillStyleLst>` +
		`<a:lnStyleLst><a:ln w="6350"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln><a:ln w="12700"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln><a:ln w="19050"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln></a:lnStyleLst>` +
		`<a:effectStyleLst><a:effectStyle><a:effectLst/></a:effectStyle><a:effectStyle><a:effectLst/></a:effectStyle><a:effectStyle><a:effectLst/></a:effectStyle></a:effectStyleLst>` +
		`<a:bgFillStyleLst><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:bgFillStyleLst>` +
		`</a:fmtScheme>` +
		`</a:themeElements></a:theme>`
}

const xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

const emptyGroupShape = `<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>` +
	`<p:grpSpPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="0" cy="0"/><a:chOff x="0" y="0"/><a:chExt cx="0" cy="0"/></a:xfrm></p:grpSpPr>`

// slideParts renders one slide plus its relationship part. Chart
// relationship IDs start at rId2; rId1 points at the layout. Chart part
// numbers continue from chartOffset across the whole deck.
func slideParts(slide *Slide, chartOffset int) (string, string) {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<p:sld xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="` + relTypeNS + `" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main">`)
	b.WriteString(`<p:cSld><p:spTree>`)
	b.WriteString(emptyGroupShape)

	shapeID := 2
	chartRel := 2
	for _, ref := range slide.order {
		switch ref.kind {
		case shapeText:
			writeTextShape(&b, slide.textBoxes[ref.index], shapeID)
		case shapeChart:
			writeChartFrame(&b, slide.charts[ref.index], shapeID, chartRel)
			chartRel++
		}
		shapeID++
	}

	b.WriteString(`</p:spTree></p:cSld>`)
	b.WriteString(`<p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr>`)
	b.WriteString(`</p:sld>`)

	var rels strings.Builder
	rels.WriteString(xmlHeader)
	rels.WriteString(`<Relationships xmlns="` + relsNS + `">`)
	rels.WriteString(`<Relationship Id="rId1" Type="` + relTypeNS + `/slideLayout" Target="../slideLayouts/slideLayout1.xml"/>`)
	for j := range slide.charts {
		fmt.Fprintf(&rels, `<Relationship Id="rId%d" Type="%s/chart" Target="../charts/chart%d.xml"/>`,
			j+2, relTypeNS, chartOffset+j+1)
	}
	rels.WriteString(`</Relationships>`)

	return b.String(), rels.String()
}

func writeTextShape(b *strings.Builder, box TextBox, shapeID int) {
	fmt.Fprintf(b, `<p:sp><p:nvSpPr><p:cNvPr id="%d" name="TextBox %d"/><p:cNvSpPr txBox="1"/><p:nvPr/></p:nvSpPr>`, shapeID, shapeID)
	fmt.Fprintf(b, `<p:spPr><a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm>`,
		inchesToEMU(box.X), inchesToEMU(box.Y), inchesToEMU(box.Width), inchesToEMU(box.Height))
	b.WriteString(`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom></p:spPr>`)

	anchor := box.Anchor
	if anchor == "" {
		anchor = AnchorTop
	}
	fmt.Fprintf(b, `<p:txBody><a:bodyPr wrap="square" anchor="%s"/><a:lstStyle/>`, anchor)

	b.WriteString(`<a:p>`)
	if box.Align != "" {
		fmt.Fprintf(b, `<a:pPr algn="%s"/>`, box.Align)
	}
	b.WriteString(`<a:r>`)

	size := box.FontSize
	if size <= 0 {
		size = 12
	}
	fmt.Fprintf(b, `<a:rPr lang="en-US" sz="%d"`, size*100)
	if box.Bold {
		b.WriteString(` b="1"`)
	}
	b.WriteString(`>`)
	if box.Color != "" {
		fmt.Fprintf(b, `<a:solidFill><a:srgbClr val="%s"/></a:solidFill>`, box.Color)
	}
	if box.Font != "" {
		fmt.Fprintf(b, `<a:latin typeface="%s"/>`, escapeXML(box.Font))
	}
	b.WriteString(`</a:rPr>`)
	fmt.Fprintf(b, `<a:t>%s</a:t>`, escapeXML(box.Text))
	b.WriteString(`</a:r></a:p></p:txBody></p:sp>`)
}

func writeChartFrame(b *strings.Builder, chart BarChart, shapeID, relID int) {
	fmt.Fprintf(b, `<p:graphicFrame><p:nvGraphicFramePr><p:cNvPr id="%d" name="Chart %d"/><p:cNvGraphicFramePr/><p:nvPr/></p:nvGraphicFramePr>`, shapeID, shapeID)
	fmt.Fprintf(b, `<p:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></p:xfrm>`,
		inchesToEMU(chart.X), inchesToEMU(chart.Y), inchesToEMU(chart.Width), inchesToEMU(chart.Height))
	b.WriteString(`<a:graphic><a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/chart">`)
	fmt.Fprintf(b, `<c:chart xmlns:c="http://schemas.openxmlformats.org/drawingml/2006/chart" xmlns:r="%s" r:id="rId%d"/>`, relTypeNS, relID)
	b.WriteString(`</a:graphicData></a:graphic></p:graphicFrame>`)
}

func chartXML(chart BarChart) string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<c:chartSpace xmlns:c="http://schemas.openxmlformats.org/drawingml/2006/chart" xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="` + relTypeNS + `">`)
	b.WriteString(`<c:chart>`)

	if chart.Title != "" {
		b.WriteString(`<c:title><c:tx><c:rich><a:bodyPr/><a:lstStyle/><a:p><a:r><a:t>`)
		b.WriteString(escapeXML(chart.Title))
		b.WriteString(`</a:t></a:r></a:p></c:rich></c:tx><c:overlay val="0"/></c:title>`)
		b.WriteString(`<c:autoTitleDeleted val="0"/>`)
	} else {
		b.WriteString(`<c:autoTitleDeleted val="1"/>`)
	}

	b.WriteString(`<c:plotArea><c:layout/>`)
	b.WriteString(`<c:barChart><c:barDir val="col"/><c:grouping val="clustered"/>`)

	for i, series := range chart.Series {
		fmt.Fprintf(&b, `<c:ser><c:idx val="%d"/><c:order val="%d"/>`, i, i)
		b.WriteString(`<c:tx><c:strRef><c:f/><c:strCache><c:ptCount val="1"/><c:pt idx="0"><c:v>`)
		b.WriteString(escapeXML(series.Name))
		b.WriteString(`</c:v></c:pt></c:strCache></c:strRef></c:tx>`)
		fmt.Fprintf(&b, `<c:val><c:numRef><c:f/><c:numCache><c:ptCount val="%d"/>`, len(series.Values))
		for j, value := range series.Values {
			fmt.Fprintf(&b, `<c:pt idx="%d"><c:v>%s</c:v></c:pt>`, j, strconv.FormatFloat(value, 'f', -1, 64))
		}
		b.WriteString(`</c:numCache></c:numRef></c:val></c:ser>`)
	}

	b.WriteString(`<c:axId val="111111111"/><c:axId val="222222222"/></c:barChart>`)
	b.WriteString(`<c:catAx><c:axId val="111111111"/><c:scaling><c:orientation val="minMax"/></c:scaling><c:delete val="0"/><c:axPos val="b"/><c:crossAx val="222222222"/></c:catAx>`)
	b.WriteString(`<c:valAx><c:axId val="222222222"/><c:scaling><c:orientation val="minMax"/></c:scaling><c:delete val="0"/><c:axPos val="l"/><c:crossAx val="111111111"/></c:valAx>`)
	b.WriteString(`</c:plotArea>`)
	b.WriteString(`<c:plotVisOnly val="1"/>`)
	b.WriteString(`</c:chart></c:chartSpace>`)
	return b.String()
}

func escapeXML(value string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&apos;",
	)
	return replacer.Replace(value)
}
