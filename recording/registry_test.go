package recording

import (
	"slices"
	"testing"

	"github.com/gogpu/drawing/internal/binio"
)

// testOpType is far past the last real op type.
const testOpType OpType = 1 << 20

func nopUnmarshal(*DrawCmdList, *binio.Reader) DrawOpItem { return nil }

func TestRegisteredOps(t *testing.T) {
	ops := RegisteredOps()
	if !slices.IsSorted(ops) {
		t.Errorf("RegisteredOps() not sorted: %v", ops)
	}
	for _, typ := range []OpType{OpSave, OpRestore, OpClipRect, OpColor, OpTextBlob, OpImageRect, OpVertices} {
		if !slices.Contains(ops, typ) {
			t.Errorf("RegisteredOps() missing %v", typ)
		}
	}
	for _, typ := range ops {
		if typ.String() == "" {
			t.Errorf("op %d has no name", typ)
		}
	}
}

func TestEveryNamedOpIsRegistered(t *testing.T) {
	skip := map[OpType]bool{OpItemHead: true, OpImageAnnotation: true, OpEdgeAAQuad: true}
	for typ := OpItemHead; typ <= OpVertices; typ++ {
		if skip[typ] {
			continue
		}
		if !IsRegistered(typ) {
			t.Errorf("IsRegistered(%v) = false", typ)
		}
	}
}

func TestRegisterAndUnregister(t *testing.T) {
	if IsRegistered(testOpType) {
		t.Fatal("test op type already registered")
	}
	registerOp(testOpType, nopUnmarshal)
	if !IsRegistered(testOpType) {
		t.Error("IsRegistered() = false after registerOp")
	}
	if _, ok := lookupUnmarshaler(testOpType); !ok {
		t.Error("lookupUnmarshaler() found nothing")
	}

	unregisterOp(testOpType)
	if IsRegistered(testOpType) {
		t.Error("IsRegistered() = true after unregisterOp")
	}
	// Unregistering twice is harmless.
	unregisterOp(testOpType)
}

func TestRegisterNilFunc(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for nil unmarshal func")
		}
	}()
	registerOp(testOpType, nil)
}

func TestRegisterDuplicate(t *testing.T) {
	registerOp(testOpType, nopUnmarshal)
	defer unregisterOp(testOpType)

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for duplicate registration")
		}
	}()
	registerOp(testOpType, nopUnmarshal)
}

func TestOpTypeString(t *testing.T) {
	tests := []struct {
		typ  OpType
		want string
	}{
		{OpItemHead, "OPITEM_HEAD"},
		{OpClipRect, "CLIP_RECT_OPITEM"},
		{OpTextBlob, "TEXT_BLOB_OPITEM"},
		{OpVertices, "VERTICES_OPITEM"},
		{OpType(9999), "OpType(9999)"},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("OpType(%d).String() = %q, want %q", uint32(tt.typ), got, tt.want)
		}
	}
}

func TestOpTypeClassification(t *testing.T) {
	tests := []struct {
		typ        OpType
		draw, clip bool
	}{
		{OpRect, true, false},
		{OpTextBlob, true, false},
		{OpVertices, true, false},
		{OpAdaptiveImage, true, false},
		{OpClipPath, false, true},
		{OpClipAdaptiveRoundRect, false, true},
		{OpSave, false, false},
		{OpTranslate, false, false},
	}
	for _, tt := range tests {
		if got := tt.typ.IsDrawOp(); got != tt.draw {
			t.Errorf("%v.IsDrawOp() = %v, want %v", tt.typ, got, tt.draw)
		}
		if got := tt.typ.IsClipOp(); got != tt.clip {
			t.Errorf("%v.IsClipOp() = %v, want %v", tt.typ, got, tt.clip)
		}
	}
}

func TestConcurrentRegistryAccess(t *testing.T) {
	done := make(chan bool)

	go func() {
		for i := 0; i < 100; i++ {
			typ := testOpType + 1 + OpType(i)
			registerOp(typ, nopUnmarshal)
			unregisterOp(typ)
		}
		done <- true
	}()

	go func() {
		for i := 0; i < 100; i++ {
			_ = RegisteredOps()
			_ = IsRegistered(OpRect)
		}
		done <- true
	}()

	<-done
	<-done
}
