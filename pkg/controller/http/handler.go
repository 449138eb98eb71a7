package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/headcount/pkg/domain/model"
	"github.com/secmon-lab/headcount/pkg/domain/types"
	"github.com/secmon-lab/headcount/pkg/service/notify"
	"github.com/secmon-lab/headcount/pkg/usecase"
)

// maxBodySize limits action request bodies
const maxBodySize = 1 << 20

type handler struct {
	view     View
	chart    ChartSource
	messages MessageSource
}

// SelectionRequest selects departments. All, or a missing departments list,
// selects every department. One department selects it alone and any other
// count, including an empty list, selects a set.
type SelectionRequest struct {
	All         bool     `json:"all"`
	Departments []string `json:"departments"`
}

// Selector converts the request into a department selector
func (x SelectionRequest) Selector() model.DepartmentSelector {
	if x.All || x.Departments == nil {
		return model.AllDepartments()
	}
	ids := make([]types.DepartmentID, len(x.Departments))
	for i, id := range x.Departments {
		ids[i] = types.DepartmentID(id)
	}
	if len(ids) == 1 {
		return model.SingleDepartment(ids[0])
	}
	return model.DepartmentSet(ids...)
}

// FilterRequest is the body of POST /api/filter. Dates are "YYYY-MM-DD"; empty leaves the bound open.
type FilterRequest struct {
	Start string `json:"start"`
	End   string `json:"end"`
	SelectionRequest
}

// Filter converts the request into a filter state. The result is not validated.
func (x FilterRequest) Filter() (model.FilterState, error) {
	start, err := model.ParseDate(x.Start)
	if err != nil {
		return model.FilterState{}, goerr.Wrap(err, "invalid start date")
	}
	end, err := model.ParseDate(x.End)
	if err != nil {
		return model.FilterState{}, goerr.Wrap(err, "invalid end date")
	}
	return model.FilterState{
		DateRange:   model.NewDateRange(start, end),
		Departments: x.Selector(),
	}, nil
}

// StateResponse is the JSON form of the controller state
type StateResponse struct {
	Phase        string   `json:"phase"`
	Mode         string   `json:"mode"`
	Start        string   `json:"start"`
	End          string   `json:"end"`
	All          bool     `json:"all"`
	Departments  []string `json:"departments"`
	SeriesCount  int      `json:"series_count"`
	Rendered     bool     `json:"rendered"`
	ChartVersion uint64   `json:"chart_version"`
}

func (h *handler) state() StateResponse {
	s := h.view.State()
	resp := StateResponse{
		Phase:        string(s.Phase),
		Mode:         s.Mode.String(),
		Start:        model.FormatDate(s.Filter.DateRange.Start),
		End:          model.FormatDate(s.Filter.DateRange.End),
		All:          s.Filter.Departments.IsAll(),
		Departments:  []string{},
		SeriesCount:  s.SeriesCount,
		Rendered:     s.Rendered,
		ChartVersion: h.chart.Version(),
	}
	for _, id := range s.Filter.Departments.IDs() {
		resp.Departments = append(resp.Departments, id.String())
	}
	return resp
}

func decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return goerr.Wrap(err, "invalid request body", goerr.T(model.ErrTagInvalidFilter))
	}
	return nil
}

func (h *handler) handleDepartments(w http.ResponseWriter, r *http.Request) {
	departments := h.view.Departments()
	if departments == nil {
		departments = []*model.Department{}
	}
	writeJSON(w, r, map[string]any{"departments": departments})
}

func (h *handler) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, h.state())
}

func (h *handler) handleMessages(w http.ResponseWriter, r *http.Request) {
	var after uint64
	if v := r.URL.Query().Get("after"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			writeError(w, r, goerr.Wrap(err, "invalid after parameter", goerr.T(model.ErrTagInvalidFilter)), http.StatusBadRequest)
			return
		}
		after = n
	}

	messages := []notify.Message{}
	if h.messages != nil {
		messages = h.messages.Since(after)
	}
	writeJSON(w, r, map[string]any{"messages": messages})
}

func (h *handler) handleFilter(w http.ResponseWriter, r *http.Request) {
	var req FilterRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err, http.StatusBadRequest)
		return
	}
	filter, err := req.Filter()
	if err != nil {
		writeError(w, r, err, statusOf(err))
		return
	}

	if err := h.view.ApplyFilter(r.Context(), filter); err != nil {
		writeError(w, r, err, statusOf(err))
		return
	}
	writeJSON(w, r, h.state())
}

func (h *handler) handleSelection(w http.ResponseWriter, r *http.Request) {
	var req SelectionRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err, http.StatusBadRequest)
		return
	}

	if err := h.view.ChangeSelection(r.Context(), req.Selector()); err != nil {
		writeError(w, r, err, statusOf(err))
		return
	}
	writeJSON(w, r, h.state())
}

func (h *handler) handleToggle(w http.ResponseWriter, r *http.Request) {
	if err := h.view.ToggleViewMode(r.Context()); err != nil {
		writeError(w, r, err, statusOf(err))
		return
	}
	writeJSON(w, r, h.state())
}

func (h *handler) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if err := h.view.Refresh(r.Context()); err != nil {
		writeError(w, r, err, statusOf(err))
		return
	}
	writeJSON(w, r, h.state())
}

func (h *handler) handleExport(w http.ResponseWriter, r *http.Request) {
	paths, err := h.view.Export(r.Context())
	if err != nil {
		writeError(w, r, err, statusOf(err))
		return
	}
	if paths == nil {
		paths = []string{}
	}
	writeJSON(w, r, map[string]any{"paths": paths})
}

func (h *handler) handleChart(w http.ResponseWriter, r *http.Request) {
	data := h.chart.Bytes()
	if len(data) == 0 {
		writeError(w, r, goerr.New("no chart has been drawn yet", goerr.T(model.ErrTagRender)), http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", h.chart.Format().ContentType())
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		ctxlog.From(r.Context()).Error("Failed to write chart", "error", err)
	}
}

var _ View = (*usecase.ViewController)(nil)
