package server

import (
	"context"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/JanHsuanChu/JournalAnalyzer/internal/config"
	"github.com/JanHsuanChu/JournalAnalyzer/internal/journal"
	"github.com/JanHsuanChu/JournalAnalyzer/internal/llm"
	"github.com/JanHsuanChu/JournalAnalyzer/internal/report"
	"github.com/JanHsuanChu/JournalAnalyzer/internal/store"
)

type Server struct {
	Store      *store.Store
	Builder    *report.Builder
	ReportsDir string
}

func NewServer() *Server {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.toml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Printf("Could not load %s: %v. Using defaults", cfgPath, err)
		cfg = config.Default()
	}

	// Env vars override the config file.
	if v := os.Getenv("JOURNAL_CSV"); v != "" {
		cfg.Server.CSVPath = v
	}
	if v := os.Getenv("REPORTS_DIR"); v != "" {
		cfg.Server.ReportsDir = v
	}
	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		cfg.LLM.Provider = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}

	st, err := store.NewFromCSV(cfg.Server.CSVPath)
	if err != nil {
		log.Fatalf("Failed to load journal entries: %v", err)
	}
	log.Printf("Loaded %d journal entries from %s", st.Len(), cfg.Server.CSVPath)

	// Without an API key the report degrades to placeholder narratives and
	// never dials out.
	var summarizer report.Summarizer
	if cfg.LLM.APIKey != "" {
		client, err := llm.NewClient(context.Background(), cfg.LLM)
		if err != nil {
			log.Fatalf("Failed to initialize LLM client: %v", err)
		}
		summarizer = llm.NewGateway(client, time.Duration(cfg.LLM.TimeoutSeconds)*time.Second)
	} else {
		log.Println("LLM_API_KEY not set; reports will use placeholder summaries")
	}

	return &Server{
		Store:      st,
		Builder:    report.NewBuilder(summarizer, cfg.Server.ReportsDir, cfg.LLM.Model),
		ReportsDir: cfg.Server.ReportsDir,
	}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()
	r.Use(corsMiddleware())

	r.GET("/health", s.Health)
	r.GET("/entries", s.GetEntries)
	r.POST("/entries/filter", s.FilterEntries)
	r.POST("/reports", s.GenerateReport)
	r.GET("/reports/*filename", s.GetReport)

	return r
}

// corsMiddleware allows a UI served from another origin to call the API.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type entryRecord struct {
	Date      string `json:"date"`
	DayOfWeek string `json:"day_of_week"`
	TimeOfDay string `json:"time_of_day"`
	Text      string `json:"text"`
}

func toRecords(entries []journal.Entry) []entryRecord {
	records := make([]entryRecord, 0, len(entries))
	for _, e := range entries {
		records = append(records, entryRecord{
			Date:      e.Date.Format(journal.DateFormat),
			DayOfWeek: e.DayOfWeek,
			TimeOfDay: e.TimeOfDay,
			Text:      e.Text,
		})
	}
	return records
}

// GetEntries returns the full entry collection, dates as YYYY-MM-DD. An
// empty store serves an empty list.
func (s *Server) GetEntries(c *gin.Context) {
	c.JSON(http.StatusOK, toRecords(s.Store.Entries()))
}

type FilterRequest struct {
	DateFrom string   `json:"date_from"`
	DateTo   string   `json:"date_to"`
	Days     []string `json:"days"`
	Times    []string `json:"times"`
	Keywords string   `json:"keywords"`
}

// FilterEntries applies the interactive display filter and returns the
// matching entries with their count.
func (s *Server) FilterEntries(c *gin.Context) {
	var req FilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	dateFrom, ok := parseOptionalDate(req.DateFrom)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date_from; expected YYYY-MM-DD"})
		return
	}
	dateTo, ok := parseOptionalDate(req.DateTo)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date_to; expected YYYY-MM-DD"})
		return
	}

	filtered := journal.Filter(s.Store.Entries(), journal.Criteria{
		DateFrom: dateFrom,
		DateTo:   dateTo,
		Days:     req.Days,
		Times:    req.Times,
		Keywords: req.Keywords,
	})

	c.JSON(http.StatusOK, gin.H{
		"count":   len(filtered),
		"entries": toRecords(filtered),
	})
}

type GenerateReportRequest struct {
	DateFrom     string `json:"date_from"`
	DateTo       string `json:"date_to"`
	TrendPhrases string `json:"trend_phrases"`
}

// GenerateReport builds a report for the date-only analysis window and
// returns its filename. Builder failures surface as one generic message
// with no partial artifact persisted.
func (s *Server) GenerateReport(c *gin.Context) {
	var req GenerateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if s.Store.Len() == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No journal entries available. Ensure the entries file is present and try again."})
		return
	}
	if req.DateFrom == "" || req.DateTo == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please select an analysis date range."})
		return
	}
	dateFrom, ok := parseOptionalDate(req.DateFrom)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please select an analysis date range."})
		return
	}
	dateTo, ok := parseOptionalDate(req.DateTo)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please select an analysis date range."})
		return
	}

	subset := journal.FilterDateOnly(s.Store.Entries(), dateFrom, dateTo)
	if len(subset) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No journal entries in the selected date range. Adjust the range and try again."})
		return
	}

	var phrases []string
	for _, p := range strings.Split(req.TrendPhrases, ",") {
		if p = strings.TrimSpace(p); p != "" {
			phrases = append(phrases, p)
		}
	}

	path, err := s.Builder.Build(c.Request.Context(), subset, phrases, *dateFrom, *dateTo)
	if err != nil {
		log.Printf("Failed to build report: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Report generation failed. Check that the API is running and LLM_API_KEY is set."})
		return
	}

	filename := filepath.Base(path)
	c.JSON(http.StatusOK, gin.H{
		"filename": filename,
		"path":     path,
		"url":      "/reports/" + filename,
	})
}

// GetReport serves a generated report file. Only files that resolve inside
// the reports directory are allowed; anything else is reported as not found.
func (s *Server) GetReport(c *gin.Context) {
	filename := strings.TrimPrefix(c.Param("filename"), "/")

	reportsDir, err := filepath.Abs(s.ReportsDir)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
		return
	}
	path := filepath.Join(reportsDir, filepath.Clean("/"+filename))
	if path != reportsDir && !strings.HasPrefix(path, reportsDir+string(os.PathSeparator)) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
		return
	}
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.File(path)
}

// parseOptionalDate parses a YYYY-MM-DD string; empty means no bound. The
// second return is false only for a malformed non-empty value.
func parseOptionalDate(value string) (*time.Time, bool) {
	if value == "" {
		return nil, true
	}
	t, err := time.Parse(journal.DateFormat, value)
	if err != nil {
		return nil, false
	}
	return &t, true
}
