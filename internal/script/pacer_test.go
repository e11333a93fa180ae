package script

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dshills/cellscribe/internal/diff"
)

func TestLoadStringDelay(t *testing.T) {
	p, err := LoadString(`
function pace(op, base_ms)
  if op == "delete" then
    return base_ms * 2
  end
  return base_ms
end
`)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	defer p.Close()

	if got := p.Delay(diff.OpDelete, 50*time.Millisecond); got != 100*time.Millisecond {
		t.Errorf("delete delay = %v, want 100ms", got)
	}
	if got := p.Delay(diff.OpInsert, 50*time.Millisecond); got != 50*time.Millisecond {
		t.Errorf("insert delay = %v, want 50ms", got)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pace.lua")
	src := "function pace(op, base_ms) return 7 end\n"
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	defer p.Close()

	if got := p.Delay(diff.OpInsert, time.Second); got != 7*time.Millisecond {
		t.Errorf("delay = %v, want 7ms", got)
	}
}

func TestLoadStringMissingPaceFunction(t *testing.T) {
	_, err := LoadString(`x = 1`)
	if !errors.Is(err, ErrNoPaceFunction) {
		t.Errorf("expected ErrNoPaceFunction, got %v", err)
	}
}

func TestLoadStringSyntaxError(t *testing.T) {
	if _, err := LoadString(`function pace(`); err == nil {
		t.Error("expected syntax error")
	}
}

func TestDelayFallsBackOnScriptError(t *testing.T) {
	p, err := LoadString(`function pace(op, base_ms) error("boom") end`)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	defer p.Close()

	if got := p.Delay(diff.OpReplace, 80*time.Millisecond); got != 80*time.Millisecond {
		t.Errorf("errored script should fall back to base, got %v", got)
	}
}

func TestDelayFallsBackOnBadReturn(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"string result", `function pace(op, base_ms) return "fast" end`},
		{"negative result", `function pace(op, base_ms) return -10 end`},
		{"nil result", `function pace(op, base_ms) return nil end`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := LoadString(tc.src)
			if err != nil {
				t.Fatalf("load failed: %v", err)
			}
			defer p.Close()
			if got := p.Delay(diff.OpInsert, 30*time.Millisecond); got != 30*time.Millisecond {
				t.Errorf("delay = %v, want base 30ms", got)
			}
		})
	}
}

func TestDelayAfterClose(t *testing.T) {
	p, err := LoadString(`function pace(op, base_ms) return 1 end`)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	p.Close()
	p.Close() // idempotent

	if got := p.Delay(diff.OpInsert, 25*time.Millisecond); got != 25*time.Millisecond {
		t.Errorf("closed pacer should return base, got %v", got)
	}
}
