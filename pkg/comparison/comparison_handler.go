package comparison

import (
	"net/http"

	"github.com/finbook/finbook/internal/rest"
	"github.com/finbook/finbook/internal/utils"
	"github.com/finbook/finbook/pkg/transaction"
)

type RowDTO struct {
	ID          string  `json:"id"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	TagId       string  `json:"tag_id,omitempty"`
	Section     string  `json:"section,omitempty"`
}

type PanelDTO struct {
	Month  string             `json:"month"`
	Rows   []RowDTO           `json:"rows"`
	Total  float64            `json:"total"`
	Groups map[string]float64 `json:"groups"`
}

type ResultDTO struct {
	Window []string `json:"window"`
	Left   PanelDTO `json:"left"`
	Right  PanelDTO `json:"right"`
	Trend  string   `json:"trend"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Compare serves GET /api/comparison?left=YYYY-MM&right=YYYY-MM&kind=incomes|expenses|needs.
// Missing or out-of-window months fall back to the newest window entries.
func (h *Handler) Compare(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	left := utils.MonthKey(query.Get("left"))
	right := utils.MonthKey(query.Get("right"))
	lens := Lens(query.Get("kind"))
	if lens == "" {
		lens = LensExpenses
	}
	if !lens.Valid() {
		rest.Error(w, http.StatusBadRequest, "bad_request", "kind must be incomes, expenses or needs")
		return
	}

	result, err := h.service.Compare(r.Context(), left, right, lens)
	if err != nil {
		rest.Error(w, http.StatusInternalServerError, "internal", err.Error())
		return
	}
	rest.JSON(w, http.StatusOK, toResultDTO(result))
}

func toResultDTO(result Result) ResultDTO {
	window := make([]string, 0, len(result.Window))
	for _, month := range result.Window {
		window = append(window, string(month))
	}
	return ResultDTO{
		Window: window,
		Left:   toPanelDTO(result.Left),
		Right:  toPanelDTO(result.Right),
		Trend:  string(result.Trend),
	}
}

func toPanelDTO(panel Panel) PanelDTO {
	rows := make([]RowDTO, 0, len(panel.Rows))
	for _, row := range panel.Rows {
		rows = append(rows, toRowDTO(row))
	}
	groups := make(map[string]float64, len(panel.Groups))
	for label, sum := range panel.Groups {
		groups[label] = sum.Float()
	}
	return PanelDTO{
		Month:  string(panel.Month),
		Rows:   rows,
		Total:  panel.Total.Float(),
		Groups: groups,
	}
}

func toRowDTO(row transaction.Transaction) RowDTO {
	return RowDTO{
		ID:          row.ID,
		Date:        row.Date.Format("2006-01-02"),
		Description: row.Description,
		Amount:      row.Amount.Float(),
		TagId:       row.TagId,
		Section:     row.Section,
	}
}
