package dashboard

// RowKind tags a display row.
type RowKind int

const (
	RowBlockHeader RowKind = iota
	RowGroupHeader
	RowCard
	RowSeparator
)

// Row is one line of a flattened panel.
type Row struct {
	Kind      RowKind
	Depth     int    // 0 for block headers and top-level cards
	ID        string // container id for headers, bookmark id for cards
	Title     string
	Collapsed bool
	Card      *Card
}

// Selectable reports whether the cursor may rest on the row.
func (r Row) Selectable() bool {
	return r.Kind != RowSeparator
}

// Rows flattens a panel in display order. Contents of collapsed blocks and
// groups are omitted; their headers stay. Blocks are separated by a
// RowSeparator.
func (p Panel) Rows() []Row {
	var rows []Row

	var walk func(items []Element, depth int)
	walk = func(items []Element, depth int) {
		for _, it := range items {
			switch it.Kind {
			case KindCard:
				rows = append(rows, Row{Kind: RowCard, Depth: depth, ID: it.Card.ID, Title: it.Card.Title, Card: it.Card})
			case KindGroup:
				g := it.Group
				rows = append(rows, Row{Kind: RowGroupHeader, Depth: depth, ID: g.ID, Title: g.Title, Collapsed: g.Collapsed})
				if !g.Collapsed {
					walk(g.Items, depth+1)
				}
			}
		}
	}

	for i, blk := range p.Blocks {
		if i > 0 {
			rows = append(rows, Row{Kind: RowSeparator})
		}
		if blk.Titled() {
			rows = append(rows, Row{Kind: RowBlockHeader, ID: blk.ID, Title: blk.Title, Collapsed: blk.Collapsed})
			if !blk.Collapsed {
				walk(blk.Items, 1)
			}
			continue
		}
		walk(blk.Items, 0)
	}
	return rows
}
