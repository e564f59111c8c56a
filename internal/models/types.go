package models

import "time"

// InstitutionID identifies one of the affiliated institutions, or the
// consolidated GROUP view.
type InstitutionID string

const (
	InstSENAC      InstitutionID = "SENAC"
	InstSESC       InstitutionID = "SESC"
	InstFECOMERCIO InstitutionID = "FECOMERCIO"
	InstIFS        InstitutionID = "IFS"
	InstIFEC       InstitutionID = "IFEC"
	InstGROUP      InstitutionID = "GROUP"
)

type Institution struct {
	ID       InstitutionID `json:"id"`
	Name     string        `json:"name"`
	FullName string        `json:"full_name"`
}

// Dimension is the GRI/ASG reporting dimension of an indicator.
type Dimension string

const (
	DimGovernance    Dimension = "Governance"
	DimEconomic      Dimension = "Economic"
	DimEnvironmental Dimension = "Environmental"
	DimSocial        Dimension = "Social"
)

// Framework distinguishes the two indicator catalogs tracked in parallel.
type Framework string

const (
	FrameworkGRI   Framework = "GRI"
	FrameworkEthos Framework = "ETHOS"
)

type QuestionType string

const (
	QuestionTextShort    QuestionType = "TEXT_SHORT"
	QuestionTextLong     QuestionType = "TEXT_LONG"
	QuestionNumber       QuestionType = "NUMBER"
	QuestionDate         QuestionType = "DATE"
	QuestionFile         QuestionType = "FILE"
	QuestionSelectSingle QuestionType = "SELECT_SINGLE"
	QuestionSelectMulti  QuestionType = "SELECT_MULTI"
	QuestionTable        QuestionType = "TABLE"
)

// Question is one field of an indicator form. Options applies to SELECT
// types, Columns to TABLE.
type Question struct {
	ID          string       `json:"id"`
	Text        string       `json:"text"`
	Type        QuestionType `json:"type"`
	Required    bool         `json:"required"`
	Options     []string     `json:"options,omitempty"`
	Columns     []string     `json:"columns,omitempty"`
	Description string       `json:"description,omitempty"`
}

// Indicator is an immutable catalog entry, loaded at startup.
type Indicator struct {
	Code             string     `json:"code"`
	Title            string     `json:"title"`
	Dimension        Dimension  `json:"dimension"`
	Framework        Framework  `json:"framework"`
	Description      string     `json:"description,omitempty"`
	MaterialityScore int        `json:"materiality_score"` // 1..5
	Questions        []Question `json:"questions,omitempty"`
}

// ResponseOption is the mutually exclusive response strategy picked per
// indicator.
type ResponseOption string

const (
	OptionAnswerNow ResponseOption = "ANSWER_NOW"
	OptionDelegate  ResponseOption = "DELEGATE"
	OptionNotMyArea ResponseOption = "NOT_MY_AREA"
	OptionNoData    ResponseOption = "NO_DATA"
)

type ResponseStatus string

const (
	StatusDraft            ResponseStatus = "DRAFT"
	StatusSubmitted        ResponseStatus = "SUBMITTED"
	StatusApproved         ResponseStatus = "APPROVED"
	StatusGapOpen          ResponseStatus = "GAP_OPEN"
	StatusGapResolved      ResponseStatus = "GAP_RESOLVED"
	StatusChangesRequested ResponseStatus = "CHANGES_REQUESTED"
)

type GapType string

const (
	GapNeverMeasured    GapType = "NEVER_MEASURED"
	GapDispersedData    GapType = "DISPERSED_DATA"
	GapSystemLimitation GapType = "SYSTEM_LIMITATION"
	GapThirdParty       GapType = "THIRD_PARTY"
)

type Priority string

const (
	PriorityHigh   Priority = "HIGH"
	PriorityMedium Priority = "MEDIUM"
	PriorityLow    Priority = "LOW"
)

// ScoringCriteria are the completeness checkboxes recorded alongside a
// Skouloudis score. They are informational; no score is derived from them.
type ScoringCriteria struct {
	HasNumericData          bool `json:"has_numeric_data"`
	HasTemporalComparison   bool `json:"has_temporal_comparison"`
	HasExternalVerification bool `json:"has_external_verification"`
	HasHistoricSeries       bool `json:"has_historic_series"`
}

type ContributionStatus string

const (
	ContributionDraft     ContributionStatus = "DRAFT"
	ContributionSubmitted ContributionStatus = "SUBMITTED"
)

// Contribution is a per-department partial answer set. Once submitted it is
// immutable; contributions are displayed beside the official answers and are
// never merged into them automatically.
type Contribution struct {
	UserID      string             `json:"user_id"`
	UserName    string             `json:"user_name"`
	Department  string             `json:"department"`
	Answers     map[string]string  `json:"answers"`
	LastUpdated time.Time          `json:"last_updated"`
	Status      ContributionStatus `json:"status"`
}

// Response is the per-indicator record of how a user chose to respond.
// Exactly one Option is active at a time; switching options never clears the
// fields belonging to the other options.
type Response struct {
	IndicatorCode string         `json:"indicator_code"`
	Option        ResponseOption `json:"option,omitempty"`
	Status        ResponseStatus `json:"status,omitempty"`

	AssignedUserID string   `json:"assigned_user_id,omitempty"`
	Contributors   []string `json:"contributors,omitempty"`
	Deadline       string   `json:"deadline,omitempty"` // ISO date
	Priority       Priority `json:"priority,omitempty"`

	// ANSWER_NOW fields: the official consolidated answers plus the
	// append-only contribution log.
	Answers             map[string]string `json:"answers,omitempty"`
	Contributions       []Contribution    `json:"contributions,omitempty"`
	PeriodStart         string            `json:"period_start,omitempty"`
	PeriodEnd           string            `json:"period_end,omitempty"`
	PeriodJustification string            `json:"period_justification,omitempty"`
	EvidenceFiles       []string          `json:"evidence_files,omitempty"`

	// DELEGATE fields.
	DelegatedTo      string `json:"delegated_to,omitempty"`
	DelegationReason string `json:"delegation_reason,omitempty"`

	// NOT_MY_AREA fields.
	RejectionReason string `json:"rejection_reason,omitempty"`
	SuggestedArea   string `json:"suggested_area,omitempty"`

	// NO_DATA (gap) fields.
	GapReason               string  `json:"gap_reason,omitempty"`
	GapType                 GapType `json:"gap_type,omitempty"`
	EstimatedResolutionDate string  `json:"estimated_resolution_date,omitempty"`
	ActionPlan              string  `json:"action_plan,omitempty"`

	SkouloudisScore int              `json:"skouloudis_score"`
	ScoringCriteria *ScoringCriteria `json:"scoring_criteria,omitempty"`

	LastUpdated time.Time `json:"last_updated"`
	Feedback    string    `json:"feedback,omitempty"`
}

// Clone returns a deep copy so callers can snapshot form state without
// sharing maps or slices with the stored record.
func (r *Response) Clone() *Response {
	if r == nil {
		return nil
	}
	cp := *r
	if r.Answers != nil {
		cp.Answers = make(map[string]string, len(r.Answers))
		for k, v := range r.Answers {
			cp.Answers[k] = v
		}
	}
	if r.Contributions != nil {
		cp.Contributions = make([]Contribution, len(r.Contributions))
		for i, c := range r.Contributions {
			cc := c
			if c.Answers != nil {
				cc.Answers = make(map[string]string, len(c.Answers))
				for k, v := range c.Answers {
					cc.Answers[k] = v
				}
			}
			cp.Contributions[i] = cc
		}
	}
	cp.Contributors = append([]string(nil), r.Contributors...)
	cp.EvidenceFiles = append([]string(nil), r.EvidenceFiles...)
	if r.ScoringCriteria != nil {
		sc := *r.ScoringCriteria
		cp.ScoringCriteria = &sc
	}
	return &cp
}

// GapSummary is a derived reporting view over an open gap, recomputed from
// the response and its deadline. It is not authoritative state.
type GapSummary struct {
	ID             string   `json:"id"`
	IndicatorCode  string   `json:"indicator_code"`
	Title          string   `json:"title"`
	Department     string   `json:"department"`
	Responsible    string   `json:"responsible"`
	DaysToDeadline int      `json:"days_to_deadline"` // negative = overdue
	Criticality    Priority `json:"criticality"`
}

type NotificationType string

const (
	NotifDelegation  NotificationType = "DELEGATION"
	NotifDeadline    NotificationType = "DEADLINE"
	NotifGapReminder NotificationType = "GAP_REMINDER"
	NotifAnomaly     NotificationType = "ANOMALY"
	NotifApproval    NotificationType = "APPROVAL"
)

type Notification struct {
	ID        string           `json:"id"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Timestamp time.Time        `json:"timestamp"`
	Read      bool             `json:"read"`
	Priority  Priority         `json:"priority"`
	Meta      NotificationMeta `json:"meta,omitempty"`
}

type NotificationMeta struct {
	IndicatorCode string `json:"indicator_code,omitempty"`
	Department    string `json:"department,omitempty"`
	TargetID      string `json:"target_id,omitempty"`
}

type HierarchyLevel string

const (
	LevelPresidency         HierarchyLevel = "PRESIDENCY"
	LevelExecutiveDirection HierarchyLevel = "EXECUTIVE_DIRECTION"
	LevelManagement         HierarchyLevel = "MANAGEMENT"
	LevelOperationalSector  HierarchyLevel = "OPERATIONAL_SECTOR"
	LevelStaff              HierarchyLevel = "STAFF"
)

type NodeType string

const (
	NodeSector NodeType = "SECTOR"
	NodePerson NodeType = "PERSON"
)

// HierarchyNode is one org-chart entry. The tree shape is kept in the store
// as parent/children id references; Children is only populated on export.
type HierarchyNode struct {
	ID               string           `json:"id"`
	Type             NodeType         `json:"type"`
	Name             string           `json:"name"`
	Role             string           `json:"role,omitempty"`
	Level            HierarchyLevel   `json:"level"`
	ResponsibleName  string           `json:"responsible_name,omitempty"`
	ResponsibleEmail string           `json:"responsible_email,omitempty"`
	InstitutionID    InstitutionID    `json:"institution_id,omitempty"`
	Children         []*HierarchyNode `json:"children,omitempty"`
}

type UserRole string

const (
	RolePresident          UserRole = "PRESIDENT"
	RoleExecutiveDirector  UserRole = "EXECUTIVE_DIRECTOR"
	RoleASGManager         UserRole = "ASG_MANAGER"
	RoleAreaCoordinator    UserRole = "AREA_COORDINATOR"
	RoleInternalAuditor    UserRole = "INTERNAL_AUDITOR"
	RoleExternalConsultant UserRole = "EXTERNAL_CONSULTANT"
)

type Permissions struct {
	CanEdit             bool `json:"can_edit"`
	CanApprove          bool `json:"can_approve"`
	CanViewConsolidated bool `json:"can_view_consolidated"`
	CanConfigure        bool `json:"can_configure"`
}

type UserProfile struct {
	ID                  string          `json:"id"`
	Name                string          `json:"name"`
	Email               string          `json:"email"`
	Role                UserRole        `json:"role"`
	Department          string          `json:"department,omitempty"`
	AllowedInstitutions []InstitutionID `json:"allowed_institutions"`
	Permissions         Permissions     `json:"permissions"`
	PassHash            []byte          `json:"-"`
}

type RespondentStatus string

const (
	RespondentActive   RespondentStatus = "ACTIVE"
	RespondentPending  RespondentStatus = "PENDING"
	RespondentInactive RespondentStatus = "INACTIVE"
)

type Respondent struct {
	ID                  string           `json:"id"`
	Name                string           `json:"name"`
	Email               string           `json:"email"`
	Role                string           `json:"role"`
	Department          string           `json:"department"`
	Status              RespondentStatus `json:"status"`
	LastAccess          time.Time        `json:"last_access"`
	IndicatorsAssigned  int              `json:"indicators_assigned"`
	IndicatorsCompleted int              `json:"indicators_completed"`
}

// ODS is a UN Sustainable Development Goal number ("1".."17").
type ODS string

// Framework hierarchy: Pillar -> Notebook -> Content -> Question.

type FrameworkContent struct {
	ID          string     `json:"id"`
	Code        string     `json:"code"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Questions   []Question `json:"questions"`
}

type Notebook struct {
	ID       string             `json:"id"`
	Title    string             `json:"title"`
	Contents []FrameworkContent `json:"contents"`
}

type Pillar struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	ODSs      []ODS      `json:"odss"`
	Notebooks []Notebook `json:"notebooks"`
}

// ProjectStatus is the subset of the response workflow used by impact
// projects (no gap side path).
type ProjectStatus string

const (
	ProjectDraft            ProjectStatus = "DRAFT"
	ProjectSubmitted        ProjectStatus = "SUBMITTED"
	ProjectApproved         ProjectStatus = "APPROVED"
	ProjectChangesRequested ProjectStatus = "CHANGES_REQUESTED"
)

type ImpactProject struct {
	ID            string        `json:"id"`
	Title         string        `json:"title"`
	Subtitle      string        `json:"subtitle,omitempty"`
	InstitutionID InstitutionID `json:"institution_id"`
	Status        ProjectStatus `json:"status"`

	ODSs    []ODS    `json:"odss,omitempty"`
	Pillars []string `json:"pillars,omitempty"`

	MainGoal    string `json:"main_goal,omitempty"`
	Description string `json:"description,omitempty"`
	Context     string `json:"context,omitempty"`
	Challenges  string `json:"challenges,omitempty"`

	ResponsibleName  string `json:"responsible_name,omitempty"`
	ResponsibleEmail string `json:"responsible_email,omitempty"`

	BeneficiariesText string   `json:"beneficiaries_text,omitempty"`
	LocationText      string   `json:"location_text,omitempty"`
	AccessType        string   `json:"access_type,omitempty"`
	InvestmentAmount  string   `json:"investment_amount,omitempty"`
	FundingSource     string   `json:"funding_source,omitempty"`
	Metrics           []string `json:"metrics,omitempty"`

	LastUpdated time.Time `json:"last_updated"`
	Feedback    string    `json:"feedback,omitempty"`
}
