package pagination

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func ctxWithQuery(query string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/?"+query, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec)
}

func TestFromContext_Defaults(t *testing.T) {
	p := FromContext(ctxWithQuery(""))
	if p.Page != 1 {
		t.Errorf("expected page 1, got %d", p.Page)
	}
	if p.PageSize != DefaultPageSize {
		t.Errorf("expected size %d, got %d", DefaultPageSize, p.PageSize)
	}
}

func TestFromContext_LegacyLimitParam(t *testing.T) {
	p := FromContext(ctxWithQuery("page=3&limit=25"))
	if p.Page != 3 || p.PageSize != 25 {
		t.Errorf("unexpected params: %+v", p)
	}
}

func TestFromContext_ClampsOversizedPage(t *testing.T) {
	p := FromContext(ctxWithQuery("pageSize=5000"))
	if p.PageSize != MaxPageSize {
		t.Errorf("expected clamp to %d, got %d", MaxPageSize, p.PageSize)
	}
}

func TestFromContext_NegativePage(t *testing.T) {
	p := FromContext(ctxWithQuery("page=-2"))
	if p.Page != 1 {
		t.Errorf("expected page 1, got %d", p.Page)
	}
}

func TestOffset(t *testing.T) {
	p := Params{Page: 3, PageSize: 10}
	if p.Offset() != 20 {
		t.Errorf("expected offset 20, got %d", p.Offset())
	}
}

func TestPages(t *testing.T) {
	p := Params{Page: 1, PageSize: 10}
	if got := p.Pages(15); got != 2 {
		t.Errorf("expected 2 pages, got %d", got)
	}
	if got := p.Pages(0); got != 0 {
		t.Errorf("expected 0 pages, got %d", got)
	}
	if got := p.Pages(10); got != 1 {
		t.Errorf("expected 1 page, got %d", got)
	}
}

func TestNewMeta_SecondPageOfFifteen(t *testing.T) {
	p := Params{Page: 2, PageSize: 10}
	m := NewMeta(p, 5, 15)
	if m.HasNext {
		t.Error("expected hasNext=false on final page")
	}
	if !m.HasPrev {
		t.Error("expected hasPrev=true on page 2")
	}
	if m.Current != 2 || m.Total != 2 {
		t.Errorf("unexpected meta: %+v", m)
	}
}

func TestNewMeta_FirstPage(t *testing.T) {
	p := Params{Page: 1, PageSize: 10}
	m := NewMeta(p, 10, 15)
	if !m.HasNext {
		t.Error("expected hasNext=true")
	}
	if m.HasPrev {
		t.Error("expected hasPrev=false on page 1")
	}
}
