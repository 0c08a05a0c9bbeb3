package game

// PointRecord is one point in an export record.
type PointRecord struct {
	Owner string `json:"owner"`
	Count int    `json:"count"`
}

// Record is the state handed to external exporters (text boards,
// clipboard transfer). The engine guarantees the shape of this data, not
// any textual format derived from it.
type Record struct {
	Points       [NumPoints]PointRecord `json:"points"` // index 0 = point 1
	Bar          [2]int                 `json:"bar"`
	Off          [2]int                 `json:"off"`
	Pending      []int                  `json:"pending"`
	Rolled       []int                  `json:"rolled"`
	Completed    []int                  `json:"completed"`
	Player       string                 `json:"player"`
	AwaitingRoll bool                   `json:"awaiting_roll"`
}

// Export assembles a Record from the live board, dice, and acting player.
func Export(b *Board, d *Dice, p Player) Record {
	r := Record{
		Bar:          b.Bar,
		Off:          b.Off,
		Pending:      copyInts(d.Pending),
		Rolled:       copyInts(d.Rolled),
		Completed:    copyInts(d.Completed),
		Player:       p.String(),
		AwaitingRoll: d.AwaitingRoll,
	}
	for n := 1; n <= NumPoints; n++ {
		pt := b.Points[n]
		r.Points[n-1] = PointRecord{Owner: pt.Owner.String(), Count: pt.Count}
	}
	return r
}
