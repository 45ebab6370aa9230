package extraction

import (
	"io"
	"regexp"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"golang.org/x/net/html"

	"dev.hon.one/sodola/common"
)

var portCellRegex = regexp.MustCompile(`(?i)^Port\s+(\d+)$`)

// portRow - A table row whose first cell names a port.
type portRow struct {
	Port  string   // Digits as shown by the device
	Cells []string // All cells, including the port cell
}

// tableRows - Split a page into rows of normalized <td> cell text, one per <tr>.
// Rows do not need an enclosing <table>. Header cells and script/style content are ignored.
func tableRows(body string) ([][]string, error) {
	var rows [][]string
	var row []string
	var cell *strings.Builder
	skipping := ""

	closeCell := func() {
		if cell != nil {
			row = append(row, normalizeCellText(cell.String()))
			cell = nil
		}
	}
	closeRow := func() {
		closeCell()
		if len(row) > 0 {
			rows = append(rows, row)
		}
		row = nil
	}

	tokenizer := html.NewTokenizer(strings.NewReader(body))
	for {
		tokenType := tokenizer.Next()
		if tokenType == html.ErrorToken {
			if err := tokenizer.Err(); err != io.EOF {
				return nil, err
			}
			closeRow()
			return rows, nil
		}
		name, _ := tokenizer.TagName()
		tag := string(name)
		if skipping != "" {
			if tokenType == html.EndTagToken && tag == skipping {
				skipping = ""
			}
			continue
		}

		switch tokenType {
		case html.TextToken:
			if cell != nil {
				cell.Write(tokenizer.Text())
			}
		case html.StartTagToken, html.SelfClosingTagToken:
			switch tag {
			case "script", "style":
				if tokenType == html.StartTagToken {
					skipping = tag
				}
			case "tr", "table":
				closeRow()
			case "td":
				closeCell()
				cell = &strings.Builder{}
			case "th":
				closeCell()
			case "br":
				if cell != nil {
					cell.WriteString(" ")
				}
			}
		case html.EndTagToken:
			switch tag {
			case "td":
				closeCell()
			case "tr", "table":
				closeRow()
			}
		}
	}
}

// normalizeCellText - Trim and collapse whitespace, including non-breaking spaces.
func normalizeCellText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// portRows - Rows starting with a "Port <n>" cell and having exactly the given number of cells.
// Other rows are skipped.
func portRows(extractor string, body string, columns int) []portRow {
	rows, err := tableRows(body)
	if err != nil {
		log.WithError(err).WithFields(log.Fields{
			"extractor": extractor,
		}).Warn("Failed to parse page")
		return nil
	}

	var result []portRow
	for _, cells := range rows {
		match := portCellRegex.FindStringSubmatch(cells[0])
		if match == nil {
			// Header, layout or unrelated row
			continue
		}
		if _, err := strconv.ParseUint(match[1], 10, 32); err != nil {
			showRowSkip(extractor, match[1], "Port number out of range")
			continue
		}
		if len(cells) != columns {
			log.WithFields(log.Fields{
				"extractor": extractor,
				"port":      match[1],
				"columns":   len(cells),
				"expected":  columns,
			}).Debug("Skipping row: unexpected column count")
			continue
		}
		result = append(result, portRow{Port: match[1], Cells: cells})
	}
	return result
}

func showRowSkip(extractor string, port string, message string) {
	log.WithFields(log.Fields{
		"extractor": extractor,
		"port":      port,
	}).Debugf("Skipping row: %v", message)
}

// interfaceLabels - Interface-MIB style labels for a port.
func interfaceLabels(port string) common.Labels {
	return common.Labels{
		common.LabelIfIndex: port,
		common.LabelIfName:  "Port" + port,
		common.LabelIfDescr: "Port " + port,
		common.LabelIfAlias: "Port " + port,
	}
}
