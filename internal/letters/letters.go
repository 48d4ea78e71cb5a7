// Package letters assembles cover-letter prompts from the candidate's
// profile and a position listing, sends them to the LLM, and validates the
// model's JSON reply against a stored schema before trusting it.
package letters

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/qri-io/jsonschema"

	"github.com/careerforge/backend/internal/config"
	"github.com/careerforge/backend/pkg/llm"
	"github.com/careerforge/backend/pkg/repository"
)

// Generator abstracts the LLM client so tests can fake generation.
type Generator interface {
	Generate(ctx context.Context, model, prompt string) (llm.GenerateResult, error)
}

type Request struct {
	PositionID string   `json:"position_id"`
	Tone       string   `json:"tone,omitempty"`
	Props      []string `json:"props,omitempty"`
}

type Response struct {
	Greeting string   `json:"greeting"`
	Body     []string `json:"body"`
	SignOff  string   `json:"sign_off"`
}

const promptTemplate = `You are writing a cover letter for a job application.

Candidate: {{.Name}}{{if .JobTitle}} ({{.JobTitle}}){{end}}
Position: {{.Title}} at {{.Organization}}{{if .Location}} in {{.Location}}{{end}}
{{if .Description}}Role description:
{{.Description}}
{{end}}{{if .Tone}}Tone: {{.Tone}}
{{end}}{{if .Props}}Highlight: {{.Props}}
{{end}}
Reply with only a JSON object of the shape
{"greeting": string, "body": [string, ...], "sign_off": string}
with two or three body paragraphs. No markdown, no commentary.`

type Service struct {
	gen     Generator
	users   repository.UserRepo
	pos     repository.PositionRepo
	schemas repository.SchemaRepo
	cfg     config.LettersConfig
	logger  *slog.Logger

	mu       sync.Mutex
	compiled *jsonschema.Schema
}

func NewService(gen Generator, users repository.UserRepo, pos repository.PositionRepo, schemas repository.SchemaRepo, cfg config.LettersConfig, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{gen: gen, users: users, pos: pos, schemas: schemas, cfg: cfg, logger: logger}
}

// Generate builds the prompt, runs the model, and returns the validated
// cover letter.
func (s *Service) Generate(ctx context.Context, userID string, req Request) (*Response, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %s not found", userID)
	}

	position, err := s.pos.GetPositionByID(ctx, req.PositionID)
	if err != nil {
		return nil, fmt.Errorf("lookup position: %w", err)
	}
	if position == nil {
		return nil, fmt.Errorf("position %s not found", req.PositionID)
	}
	info, err := s.pos.GetPositionInfo(ctx, req.PositionID)
	if err != nil {
		return nil, fmt.Errorf("lookup position info: %w", err)
	}

	data := map[string]any{
		"Name":         strings.TrimSpace(user.FirstName + " " + user.LastName),
		"JobTitle":     user.JobTitle,
		"Title":        position.Title,
		"Organization": "",
		"Location":     location(position.City, position.Country),
		"Description":  position.RoleDescription,
		"Tone":         req.Tone,
		"Props":        strings.Join(req.Props, ", "),
	}
	if info != nil {
		data["Organization"] = info.OrganizationName
	}

	prompt, err := llm.RenderTemplate(promptTemplate, data)
	if err != nil {
		return nil, fmt.Errorf("render prompt: %w", err)
	}

	res, err := s.gen.Generate(ctx, s.cfg.Model, prompt)
	if err != nil {
		return nil, fmt.Errorf("generate cover letter: %w", err)
	}

	raw, err := llm.ExtractJSON(res.Text)
	if err != nil {
		return nil, fmt.Errorf("model output: %w", err)
	}

	if err := s.validate(ctx, raw); err != nil {
		s.logger.Error("cover letter failed schema validation", slog.Any("err", err))
		return nil, err
	}

	var out Response
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode cover letter: %w", err)
	}
	return &out, nil
}

// validate checks the model's JSON against the stored schema, compiling and
// caching it on first use.
func (s *Service) validate(ctx context.Context, raw json.RawMessage) error {
	schema, err := s.schema(ctx)
	if err != nil {
		return err
	}

	verrs, err := schema.ValidateBytes(ctx, raw)
	if err != nil {
		return fmt.Errorf("schema validate error: %w", err)
	}
	if len(verrs) > 0 {
		var sb strings.Builder
		for _, v := range verrs {
			sb.WriteString(v.Message)
			sb.WriteString("; ")
		}
		return fmt.Errorf("cover letter does not match schema: %s", sb.String())
	}
	return nil
}

func (s *Service) schema(ctx context.Context) (*jsonschema.Schema, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.compiled != nil {
		return s.compiled, nil
	}

	row, err := s.schemas.GetSchemaByVersion(ctx, s.cfg.SchemaVersion)
	if err != nil {
		return nil, fmt.Errorf("load schema: %w", err)
	}
	if row == nil {
		return nil, fmt.Errorf("no schema found for version %s", s.cfg.SchemaVersion)
	}

	rs := &jsonschema.Schema{}
	if err := json.Unmarshal([]byte(row.SchemaJSON), rs); err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", row.Version, err)
	}
	s.compiled = rs
	return rs, nil
}

func location(city, country string) string {
	switch {
	case city != "" && country != "":
		return city + ", " + country
	case city != "":
		return city
	default:
		return country
	}
}
