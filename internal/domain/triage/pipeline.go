package triage

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tricare/tricare/internal/platform/llm"
)

// Pipeline runs the four-stage symptom analysis: extract symptoms, assess
// urgency, route to a specialist, generate recommendations. Stages run
// strictly in order; a failed stage aborts the run with no partial result
// and no retry. The pipeline is stateless and safe for concurrent use.
type Pipeline struct {
	completer llm.Completer
	log       zerolog.Logger
}

func NewPipeline(completer llm.Completer, log zerolog.Logger) *Pipeline {
	return &Pipeline{completer: completer, log: log}
}

// Run executes all stages against a fresh context and assembles the final
// recommendation. Cancelling ctx aborts the in-flight model call.
func (p *Pipeline) Run(ctx context.Context, req RouteRequest) (*PipelineContext, error) {
	pc := &PipelineContext{Input: req}

	if err := p.extractSymptoms(ctx, pc); err != nil {
		return nil, fmt.Errorf("extract symptoms: %w", err)
	}
	if err := p.assessUrgency(ctx, pc); err != nil {
		return nil, fmt.Errorf("assess urgency: %w", err)
	}
	if err := p.routeSpecialist(ctx, pc); err != nil {
		return nil, fmt.Errorf("route specialist: %w", err)
	}
	if err := p.generateRecommendations(ctx, pc); err != nil {
		return nil, fmt.Errorf("generate recommendations: %w", err)
	}

	return pc, nil
}

const extractSystemPrompt = `You are a medical triage assistant. Extract key symptoms from the patient's description.

List distinct, specific symptoms mentioned. Be thorough but concise.

IMPORTANT: Respond ONLY with valid JSON, no additional text.`

func (p *Pipeline) extractSymptoms(ctx context.Context, pc *PipelineContext) error {
	p.log.Debug().Msg("stage 1: extracting symptoms")

	user := fmt.Sprintf(`%s

Symptoms described: %s

Extract a list of distinct symptoms. Respond in JSON format:
{
  "extracted_symptoms": ["symptom 1", "symptom 2", ...]
}`, buildPatientContext(pc.Input), pc.Input.Symptoms)

	raw, err := p.completer.Complete(ctx, extractSystemPrompt, user)
	if err != nil {
		return err
	}

	var out struct {
		ExtractedSymptoms []string `json:"extracted_symptoms"`
	}
	if err := decodeStage(raw, &out); err != nil {
		return err
	}

	pc.ExtractedSymptoms = out.ExtractedSymptoms
	if pc.ExtractedSymptoms == nil {
		pc.ExtractedSymptoms = []string{}
	}
	p.log.Debug().Int("count", len(pc.ExtractedSymptoms)).Msg("symptoms extracted")
	return nil
}

const urgencySystemPrompt = `You are a medical triage expert. Assess the urgency of the patient's condition and identify any red flag symptoms that require immediate attention.

Urgency levels:
- emergency: Life-threatening, needs 911/ER immediately
- urgent: Needs medical attention within 24 hours
- routine: Schedule regular appointment within days/weeks
- non-urgent: Minor issue, can wait or self-manage

Red flags are symptoms that suggest serious conditions requiring immediate care.

IMPORTANT: Respond ONLY with valid JSON, no additional text.`

func (p *Pipeline) assessUrgency(ctx context.Context, pc *PipelineContext) error {
	p.log.Debug().Msg("stage 2: assessing urgency")

	duration := pc.Input.Duration
	if duration == "" {
		duration = "not specified"
	}

	user := fmt.Sprintf(`%s

Symptoms: %s
Duration: %s

Assess urgency and identify red flags. Respond in JSON:
{
  "urgency_level": "emergency|urgent|routine|non-urgent",
  "urgency_assessment": "Brief explanation of urgency decision",
  "red_flags": ["red flag 1", "red flag 2", ...] or []
}`, buildPatientContext(pc.Input), strings.Join(pc.ExtractedSymptoms, ", "), duration)

	raw, err := p.completer.Complete(ctx, urgencySystemPrompt, user)
	if err != nil {
		return err
	}

	var out struct {
		UrgencyLevel      string   `json:"urgency_level"`
		UrgencyAssessment string   `json:"urgency_assessment"`
		RedFlags          []string `json:"red_flags"`
	}
	if err := decodeStage(raw, &out); err != nil {
		return err
	}

	level, err := ParseUrgencyLevel(out.UrgencyLevel)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if out.UrgencyAssessment == "" {
		return fmt.Errorf("%w: missing urgency_assessment", ErrMalformedResponse)
	}

	pc.UrgencyLevel = level
	pc.UrgencyAssessment = out.UrgencyAssessment
	pc.RedFlags = out.RedFlags
	if pc.RedFlags == nil {
		pc.RedFlags = []string{}
	}
	p.log.Debug().Str("urgency", string(level)).Msg("urgency assessed")
	return nil
}

const routeSystemPrompt = `You are a medical routing expert. Based on symptoms and urgency, recommend the most appropriate type of healthcare provider or specialist.

Options include:
- Emergency Department (for emergencies)
- Primary Care Physician/Family Doctor
- Specialists (Cardiologist, Pulmonologist, Neurologist, Orthopedist, Dermatologist, etc.)
- Urgent Care Clinic

Provide clear reasoning for your recommendation.

IMPORTANT: Respond ONLY with valid JSON, no additional text.`

func (p *Pipeline) routeSpecialist(ctx context.Context, pc *PipelineContext) error {
	p.log.Debug().Msg("stage 3: routing to specialist")

	redFlagLine := "No red flags identified"
	if len(pc.RedFlags) > 0 {
		redFlagLine = "Red flags: " + strings.Join(pc.RedFlags, ", ")
	}

	user := fmt.Sprintf(`%s

Symptoms: %s
Urgency: %s
%s

Recommend specialist and explain why. Respond in JSON:
{
  "recommended_specialist": "Type of specialist or provider",
  "reasoning": "Clear explanation of why this specialist is appropriate"
}`, buildPatientContext(pc.Input), strings.Join(pc.ExtractedSymptoms, ", "), pc.UrgencyLevel, redFlagLine)

	raw, err := p.completer.Complete(ctx, routeSystemPrompt, user)
	if err != nil {
		return err
	}

	var out struct {
		RecommendedSpecialist string `json:"recommended_specialist"`
		Reasoning             string `json:"reasoning"`
	}
	if err := decodeStage(raw, &out); err != nil {
		return err
	}
	if out.RecommendedSpecialist == "" {
		return fmt.Errorf("%w: missing recommended_specialist", ErrMalformedResponse)
	}
	if out.Reasoning == "" {
		return fmt.Errorf("%w: missing reasoning", ErrMalformedResponse)
	}

	pc.RecommendedSpecialist = out.RecommendedSpecialist
	pc.Reasoning = out.Reasoning
	p.log.Debug().Str("specialist", out.RecommendedSpecialist).Msg("specialist recommended")
	return nil
}

const recommendSystemPrompt = `You are a patient care advisor. Provide practical guidance for the patient's visit and self-care.

Include:
1. What to prepare/bring to the appointment
2. Tests the doctor might order
3. Safe home care measures (if applicable)

Be specific and actionable.

IMPORTANT: Respond ONLY with valid JSON, no additional text.`

func (p *Pipeline) generateRecommendations(ctx context.Context, pc *PipelineContext) error {
	p.log.Debug().Msg("stage 4: generating recommendations")

	user := fmt.Sprintf(`%s

Symptoms: %s
Specialist: %s
Urgency: %s

Provide practical guidance. Respond in JSON:
{
  "suggested_preparations": ["preparation 1", "preparation 2", ...],
  "suggested_tests": ["test 1", "test 2", ...],
  "home_care_tips": ["tip 1", "tip 2", ...] or []
}`, buildPatientContext(pc.Input), strings.Join(pc.ExtractedSymptoms, ", "), pc.RecommendedSpecialist, pc.UrgencyLevel)

	raw, err := p.completer.Complete(ctx, recommendSystemPrompt, user)
	if err != nil {
		return err
	}

	var out struct {
		SuggestedPreparations []string `json:"suggested_preparations"`
		SuggestedTests        []string `json:"suggested_tests"`
		HomeCareTips          []string `json:"home_care_tips"`
	}
	if err := decodeStage(raw, &out); err != nil {
		return err
	}

	pc.SuggestedPreparations = emptyIfNil(out.SuggestedPreparations)
	pc.SuggestedTests = emptyIfNil(out.SuggestedTests)
	pc.HomeCareTips = emptyIfNil(out.HomeCareTips)
	return nil
}

// buildPatientContext renders the optional demographics and history shared
// by every stage prompt.
func buildPatientContext(req RouteRequest) string {
	var parts []string
	if req.Age != nil {
		parts = append(parts, fmt.Sprintf("Age: %d", *req.Age))
	}
	if req.Sex != "" {
		parts = append(parts, "Sex: "+req.Sex)
	}
	if len(req.ExistingConditions) > 0 {
		parts = append(parts, "Existing conditions: "+strings.Join(req.ExistingConditions, ", "))
	}
	if len(req.CurrentMedications) > 0 {
		parts = append(parts, "Current medications: "+strings.Join(req.CurrentMedications, ", "))
	}
	if len(parts) == 0 {
		return "No additional patient context provided."
	}
	return "Patient context:\n" + strings.Join(parts, "\n")
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
