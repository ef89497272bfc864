package recording

import (
	"github.com/gogpu/drawing"
	"github.com/gogpu/drawing/internal/binio"
)

// Region ops. A region list starts from an empty region; SetRect replaces
// it and Op combines it with a nested region.
const (
	regionOpSetRect uint32 = iota + 1
	regionOpOp
)

var regionDialect = newDialect(CmdListTypeRegion, drawing.NewRegion)

// AddRegionToCmdList records region as a nested list of list: the first
// rect is set and every further rect is unioned in.
func AddRegionToCmdList(list *CmdList, region *drawing.Region) CmdListHandle {
	if region == nil {
		return CmdListHandle{}
	}
	child := NewCmdList(CmdListTypeRegion)
	w := binio.NewWriter(24)
	for i, rc := range region.Rects() {
		w.Reset()
		if i == 0 {
			writeRectI(w, rc)
			child.AddOp(regionOpSetRect, w.Bytes())
			continue
		}
		RecordRegionOp(child, drawing.NewRegionFromRect(rc), drawing.RegionOpUnion)
	}
	if region.IsEmpty() {
		writeRectI(w, drawing.RectI{})
		child.AddOp(regionOpSetRect, w.Bytes())
	}
	return AddChildToCmdList(list, child)
}

// RecordRegionOp appends an Op record combining the region built by list
// with other.
func RecordRegionOp(list *CmdList, other *drawing.Region, op drawing.RegionOp) {
	w := binio.NewWriter(24)
	writeCmdListHandle(w, AddRegionToCmdList(list, other))
	w.U32(uint32(op))
	list.AddOp(regionOpOp, w.Bytes())
}

// GetRegionFromCmdList rebuilds the region h refers to, or nil.
func GetRegionFromCmdList(list *CmdList, h CmdListHandle) *drawing.Region {
	if h.Size == 0 {
		return nil
	}
	return getFromCmdList(list, h, regionDialect, 0)
}

func init() {
	regionDialect.register(regionOpSetRect, func(_ *CmdList, r *binio.Reader, rg *drawing.Region, _ int) *drawing.Region {
		rg.SetRect(readRectI(r))
		return rg
	})
	regionDialect.register(regionOpOp, func(l *CmdList, r *binio.Reader, rg *drawing.Region, depth int) *drawing.Region {
		other := getFromCmdList(l, readCmdListHandle(r), regionDialect, depth)
		op := drawing.RegionOp(r.U32())
		if other != nil {
			rg.Op(other, op)
		}
		return rg
	})
}
