// Package web serves a localhost-only single-user UI; it intentionally has no
// auth/CSRF protection in this mode.
package web

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"punchpay/attendance"
	"punchpay/config"
	"punchpay/importer"
	"punchpay/report"
	"punchpay/salary"
	"punchpay/storage"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	maxUploadMemory = 32 << 20
	maxBodyBytes    = 64 << 20
	salaryField     = "salary_"
	matchAllAction  = "match_all"
)

var errUnknownUpload = errors.New("unknown upload")

type Server struct {
	store  *storage.SQLiteStore
	cfg    config.Config
	logger *slog.Logger
	router chi.Router
}

type indexPageView struct {
	Title         string
	StoredSalary  int
	UploadMessage string
}

type salaryRowView struct {
	ID      string
	Name    string
	Salary  string
	Matched bool
}

type salaryPageView struct {
	Title     string
	FileID    string
	Rows      []salaryRowView
	Message   string
	Unmatched []string
	Errors    []string
}

type resultPageView struct {
	Title       string
	FileID      string
	Rows        []report.Row
	Totals      report.Totals
	TotalAmount string
	CSVName     string
	PDFName     string
}

type salaryPayload struct {
	EmployeeID    string `json:"employeeId,omitempty"`
	Name          string `json:"name"`
	MonthlySalary string `json:"monthlySalary"`
}

func NewServer(store *storage.SQLiteStore, cfg config.Config, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	server := &Server{
		store:  store,
		cfg:    cfg,
		logger: logger,
	}

	router := chi.NewRouter()
	router.Use(requestID)
	router.Use(requestLogger(logger))
	router.Use(chimiddleware.Recoverer)
	router.Use(bodyLimit(maxBodyBytes))

	router.Get("/", server.handleIndex)
	router.Post("/upload", server.handleUpload)
	router.Get("/salary", server.handleSalaryForm)
	router.Post("/salary", server.handleSalarySubmit)
	router.Get("/result", server.handleResult)
	router.Get("/download/{name}", server.handleDownload)
	router.Get("/api/salaries", server.handleAPISalaries)
	router.Put("/api/salaries/{id}", server.handleAPISalaryPut)
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	server.router = router

	return server
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	stored, err := s.store.ListSalaries()
	if err != nil {
		http.Error(w, fmt.Sprintf("list salaries: %v", err), http.StatusInternalServerError)
		return
	}
	view := indexPageView{Title: s.cfg.Report.Title, StoredSalary: len(stored)}
	if err := renderTemplate(w, "index.html", view); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		http.Error(w, fmt.Sprintf("parse multipart form: %v", err), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file upload", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if !importer.SupportedExtension(header.Filename) {
		http.Error(w, "unsupported file type: upload an .xlsx or .csv attendance sheet", http.StatusBadRequest)
		return
	}

	if err := os.MkdirAll(s.cfg.Storage.UploadDir, 0o755); err != nil {
		http.Error(w, fmt.Sprintf("create upload dir: %v", err), http.StatusInternalServerError)
		return
	}
	fileID := uuid.NewString() + strings.ToLower(filepath.Ext(header.Filename))
	path := filepath.Join(s.cfg.Storage.UploadDir, fileID)
	if err := saveUpload(file, path); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if _, err := importer.Run([]string{path}, ""); err != nil {
		_ = os.Remove(path)
		http.Error(w, fmt.Sprintf("read attendance sheet: %v", err), http.StatusBadRequest)
		return
	}

	s.logger.Info("attendance uploaded", "file", fileID, "filename", header.Filename)
	http.Redirect(w, r, "/salary?file="+fileID, http.StatusSeeOther)
}

func (s *Server) handleSalaryForm(w http.ResponseWriter, r *http.Request) {
	fileID, roster, ok := s.loadRoster(w, r)
	if !ok {
		return
	}

	stored, err := s.store.SalaryLookup()
	if err != nil {
		http.Error(w, fmt.Sprintf("load salaries: %v", err), http.StatusInternalServerError)
		return
	}

	view := salaryPageView{Title: s.cfg.Report.Title, FileID: fileID}
	for _, employee := range roster {
		row := salaryRowView{ID: employee.ID, Name: employee.Name}
		if amount, found := stored[employee.ID]; found {
			row.Salary = amount.String()
		}
		view.Rows = append(view.Rows, row)
	}
	if err := renderTemplate(w, "salary.html", view); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleSalarySubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		http.Error(w, fmt.Sprintf("parse form: %v", err), http.StatusBadRequest)
		return
	}

	fileID, roster, ok := s.loadRoster(w, r)
	if !ok {
		return
	}

	if r.FormValue("action") == matchAllAction {
		s.matchSalarySheet(w, r, fileID, roster)
		return
	}

	view := salaryPageView{Title: s.cfg.Report.Title, FileID: fileID}
	records := make([]salary.Record, 0, len(roster))
	for _, employee := range roster {
		raw := strings.TrimSpace(r.PostFormValue(salaryField + employee.ID))
		view.Rows = append(view.Rows, salaryRowView{ID: employee.ID, Name: employee.Name, Salary: raw})
		if raw == "" {
			continue
		}
		amount, err := salary.ParseAmount(raw)
		if err != nil {
			view.Errors = append(view.Errors, fmt.Sprintf("%s (%s): %v", employee.ID, employee.Name, err))
			continue
		}
		record := salary.ForEmployee(employee, amount)
		if err := record.Validate(); err != nil {
			view.Errors = append(view.Errors, fmt.Sprintf("%s (%s): %v", employee.ID, employee.Name, err))
			continue
		}
		records = append(records, record)
	}
	for _, id := range unknownSalaryFields(r, roster) {
		view.Errors = append(view.Errors, fmt.Sprintf("%s: employee is not in the uploaded attendance sheet", id))
	}

	if len(view.Errors) > 0 {
		w.WriteHeader(http.StatusBadRequest)
		if err := renderTemplate(w, "salary.html", view); err != nil {
			s.logger.Error("render salary page", "error", err)
		}
		return
	}

	written, err := s.store.UpsertSalaries(records)
	if err != nil {
		http.Error(w, fmt.Sprintf("save salaries: %v", err), http.StatusInternalServerError)
		return
	}
	s.logger.Info("salaries saved", "file", fileID, "count", written)
	http.Redirect(w, r, "/result?file="+fileID, http.StatusSeeOther)
}

// matchSalarySheet fills the form from an uploaded salary sheet. Nothing is
// stored until the form is submitted.
func (s *Server) matchSalarySheet(w http.ResponseWriter, r *http.Request, fileID string, roster []attendance.Employee) {
	view := salaryPageView{Title: s.cfg.Report.Title, FileID: fileID}
	for _, employee := range roster {
		view.Rows = append(view.Rows, salaryRowView{
			ID:     employee.ID,
			Name:   employee.Name,
			Salary: strings.TrimSpace(r.PostFormValue(salaryField + employee.ID)),
		})
	}

	file, header, err := r.FormFile("salary_file")
	if err != nil {
		view.Errors = append(view.Errors, "choose a salary sheet to match")
		s.renderSalaryError(w, view)
		return
	}
	defer file.Close()

	tmp, err := os.CreateTemp("", tempUploadPattern(header.Filename))
	if err != nil {
		http.Error(w, fmt.Sprintf("create temp upload: %v", err), http.StatusInternalServerError)
		return
	}
	tmpPath := tmp.Name()
	_ = tmp.Close()
	defer os.Remove(tmpPath)

	if err := saveUpload(file, tmpPath); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	sheet, err := importer.ReadSalarySheet(tmpPath, "")
	if err != nil {
		view.Errors = append(view.Errors, fmt.Sprintf("read salary sheet: %v", err))
		s.renderSalaryError(w, view)
		return
	}

	match := salary.Match(roster, sheet)
	for _, record := range match.Matched {
		for i := range view.Rows {
			if view.Rows[i].ID == record.EmployeeID {
				view.Rows[i].Salary = record.MonthlySalary.String()
				view.Rows[i].Matched = true
			}
		}
	}
	view.Unmatched = match.Unmatched
	view.Message = fmt.Sprintf("Matched %d of %d employees from %s. Review and save to store them.",
		len(match.Matched), len(roster), filepath.Base(header.Filename))

	if err := renderTemplate(w, "salary.html", view); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) renderSalaryError(w http.ResponseWriter, view salaryPageView) {
	w.WriteHeader(http.StatusBadRequest)
	if err := renderTemplate(w, "salary.html", view); err != nil {
		s.logger.Error("render salary page", "error", err)
	}
}

func (s *Server) handleResult(w http.ResponseWriter, r *http.Request) {
	fileID := r.URL.Query().Get("file")
	path, err := s.uploadPath(fileID)
	if err != nil {
		http.Error(w, "unknown attendance file", http.StatusNotFound)
		return
	}

	imported, err := importer.Run([]string{path}, "")
	if err != nil {
		http.Error(w, fmt.Sprintf("read attendance sheet: %v", err), http.StatusBadRequest)
		return
	}
	salaries, err := s.store.SalaryLookup()
	if err != nil {
		http.Error(w, fmt.Sprintf("load salaries: %v", err), http.StatusInternalServerError)
		return
	}

	rows, err := report.Generate(r.Context(), imported.Records, salaries, report.Options{
		Workers:           s.cfg.Report.Workers,
		SkipWithoutSalary: s.cfg.Report.SkipWithoutSalary,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	stem := strings.TrimSuffix(fileID, filepath.Ext(fileID))
	view := resultPageView{
		Title:   s.cfg.Report.Title,
		FileID:  fileID,
		Rows:    rows,
		Totals:  report.Summarize(rows),
		CSVName: stem + "_deductions.csv",
		PDFName: stem + "_deductions.pdf",
	}
	view.TotalAmount = view.Totals.Amount.StringFixed(2)

	if err := s.writeReports(rows, view.CSVName, view.PDFName); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	s.logger.Info("report generated", "file", fileID, "rows", view.Totals.Rows, "total", view.TotalAmount)

	if err := renderTemplate(w, "result.html", view); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) writeReports(rows []report.Row, csvName, pdfName string) error {
	if err := os.MkdirAll(s.cfg.Storage.OutputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	outputs := []struct {
		format string
		name   string
	}{
		{format: "csv", name: csvName},
		{format: "pdf", name: pdfName},
	}
	for _, output := range outputs {
		writer, err := report.WriterForFormat(output.format, s.cfg.Report.Title)
		if err != nil {
			return err
		}
		if err := writer.Write(filepath.Join(s.cfg.Storage.OutputDir, output.name), rows); err != nil {
			return err
		}
	}
	return nil
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		http.NotFound(w, r)
		return
	}

	path := filepath.Join(s.cfg.Storage.OutputDir, name)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	http.ServeFile(w, r, path)
}

func (s *Server) handleAPISalaries(w http.ResponseWriter, r *http.Request) {
	records, err := s.store.ListSalaries()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	payload := make([]salaryPayload, 0, len(records))
	for _, record := range records {
		payload = append(payload, toSalaryPayload(record))
	}
	writeJSON(w, http.StatusOK, payload)
}

func (s *Server) handleAPISalaryPut(w http.ResponseWriter, r *http.Request) {
	employeeID := attendance.NormalizeEmployeeID(chi.URLParam(r, "id"))
	if employeeID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "employee id is required"})
		return
	}

	var body salaryPayload
	if err := decodeJSON(r, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("invalid request body: %v", err)})
		return
	}
	if body.EmployeeID != "" && attendance.NormalizeEmployeeID(body.EmployeeID) != employeeID {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "employee id in body does not match path"})
		return
	}

	amount, err := salary.ParseAmount(body.MonthlySalary)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	record := salary.Record{EmployeeID: employeeID, Name: strings.TrimSpace(body.Name), MonthlySalary: amount}
	if err := record.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err := s.store.UpsertSalary(record); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, toSalaryPayload(record))
}

// loadRoster resolves the file query parameter and reads the roster from the
// uploaded attendance sheet. It writes the error response itself.
func (s *Server) loadRoster(w http.ResponseWriter, r *http.Request) (string, []attendance.Employee, bool) {
	fileID := r.URL.Query().Get("file")
	path, err := s.uploadPath(fileID)
	if err != nil {
		http.Error(w, "unknown attendance file", http.StatusNotFound)
		return "", nil, false
	}

	imported, err := importer.Run([]string{path}, "")
	if err != nil {
		http.Error(w, fmt.Sprintf("read attendance sheet: %v", err), http.StatusBadRequest)
		return "", nil, false
	}
	return fileID, attendance.Roster(imported.Records), true
}

func (s *Server) uploadPath(fileID string) (string, error) {
	ext := filepath.Ext(fileID)
	if _, err := uuid.Parse(strings.TrimSuffix(fileID, ext)); err != nil || !importer.SupportedExtension(fileID) {
		return "", errUnknownUpload
	}

	path := filepath.Join(s.cfg.Storage.UploadDir, fileID)
	if _, err := os.Stat(path); err != nil {
		return "", errUnknownUpload
	}
	return path, nil
}

func unknownSalaryFields(r *http.Request, roster []attendance.Employee) []string {
	var unknown []string
	for key, values := range r.PostForm {
		id, found := strings.CutPrefix(key, salaryField)
		if !found || strings.TrimSpace(strings.Join(values, "")) == "" {
			continue
		}
		if _, ok := attendance.Find(roster, id); !ok {
			unknown = append(unknown, id)
		}
	}
	slices.Sort(unknown)
	return unknown
}

func toSalaryPayload(record salary.Record) salaryPayload {
	return salaryPayload{
		EmployeeID:    record.EmployeeID,
		Name:          record.Name,
		MonthlySalary: record.MonthlySalary.StringFixed(2),
	}
}

func saveUpload(src multipart.File, path string) error {
	dst, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create upload file: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		return fmt.Errorf("save upload: %w", err)
	}
	if err := dst.Close(); err != nil {
		return fmt.Errorf("close upload file: %w", err)
	}
	return nil
}

func renderTemplate(w http.ResponseWriter, pageTemplate string, data any) error {
	tmpl, err := template.New("base.html").ParseFS(templateFS, "templates/base.html", "templates/"+pageTemplate)
	if err != nil {
		return fmt.Errorf("parse template %s: %w", pageTemplate, err)
	}
	if err := tmpl.ExecuteTemplate(w, "base", data); err != nil {
		return fmt.Errorf("render template %s: %w", pageTemplate, err)
	}
	return nil
}

func decodeJSON(r *http.Request, out any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(out); err != nil {
		return err
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return fmt.Errorf("request body must contain a single JSON object")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func tempUploadPattern(filename string) string {
	base := filepath.Base(strings.TrimSpace(filename))
	if base == "" || base == "." {
		return "upload-*"
	}

	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	if stem == "" {
		stem = "upload"
	}
	if ext == "" {
		return stem + "-*"
	}
	return stem + "-*" + ext
}
