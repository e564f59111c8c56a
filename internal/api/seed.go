package api

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/caiosilvaazeredo/ASG-Coleta/internal/models"
	"github.com/caiosilvaazeredo/ASG-Coleta/internal/services"
)

// Institutions returns the fixed set of affiliated institutions plus the
// consolidated group view.
func Institutions() []models.Institution {
	return []models.Institution{
		{ID: models.InstSENAC, Name: "Senac RJ", FullName: "Serviço Nacional de Aprendizagem Comercial"},
		{ID: models.InstSESC, Name: "Sesc RJ", FullName: "Serviço Social do Comércio"},
		{ID: models.InstFECOMERCIO, Name: "Fecomércio RJ", FullName: "Federação do Comércio"},
		{ID: models.InstIFS, Name: "IFs", FullName: "Instituto Fecomércio de Seguridade"},
		{ID: models.InstIFEC, Name: "IFEC", FullName: "Instituto Fecomércio de Educação"},
		{ID: models.InstGROUP, Name: "Visão Consolidada", FullName: "Sistema Fecomércio RJ (Grupo)"},
	}
}

// Seed loads the indicator catalog, demo accounts, roster, framework
// hierarchy and one published impact project. Demo accounts all use the
// given password.
func Seed(store Store, orgChart *services.OrgChartService, demoPassword string) error {
	seedIndicators(store)
	seedPillars(store)
	seedRespondents(store)
	seedProjects(store)
	seedGapResponses(store)
	seedOrgChart(orgChart)
	return seedUsers(store, demoPassword)
}

func seedIndicators(store Store) {
	for _, ind := range []*models.Indicator{
		{
			Code:             "302-1",
			Title:            "Consumo de energia dentro da organização",
			Dimension:        models.DimEnvironmental,
			Framework:        models.FrameworkGRI,
			Description:      "Total de combustível consumido de fontes renováveis e não renováveis.",
			MaterialityScore: 5,
			Questions: []models.Question{
				{ID: "q1", Text: "Informe o total de energia elétrica consumida (kWh)", Type: models.QuestionNumber, Required: true},
				{ID: "q2", Text: "Houve redução comparada ao ano anterior?", Type: models.QuestionSelectSingle, Options: []string{"Sim", "Não"}, Required: true},
				{ID: "q3", Text: "Detalhamento por Fonte de Energia", Type: models.QuestionTable, Required: true, Columns: []string{"Fonte de Energia", "Consumo (kWh)", "Unidade Original", "Tipo (Renovável/Não)"}},
			},
		},
		{
			Code:             "305-1",
			Title:            "Emissões diretas (Escopo 1) de GEE",
			Dimension:        models.DimEnvironmental,
			Framework:        models.FrameworkGRI,
			Description:      "Emissões brutas de GEE diretas em toneladas de CO2 equivalente. Algumas questões exigem colaboração de Facilities e Financeiro.",
			MaterialityScore: 5,
			Questions: []models.Question{
				{ID: "q_scope1_total", Text: "Emissões Totais (tCO2e)", Type: models.QuestionNumber, Required: true},
				{ID: "q_scope1_desc", Text: "Metodologia de Cálculo utilizada", Type: models.QuestionTextLong},
			},
		},
		{
			Code:             "401-1",
			Title:            "Novas contratações e rotatividade de empregados",
			Dimension:        models.DimSocial,
			Framework:        models.FrameworkGRI,
			Description:      "Número total e taxa de novas contratações e rotatividade por faixa etária, gênero e região.",
			MaterialityScore: 4,
			Questions: []models.Question{
				{ID: "q_hire_total", Text: "Total de Novas Contratações", Type: models.QuestionNumber, Required: true},
				{ID: "q_turnover_rate", Text: "Taxa de Rotatividade (%)", Type: models.QuestionNumber, Required: true},
				{ID: "q_hire_table", Text: "Contratações por Gênero e Idade", Type: models.QuestionTable, Columns: []string{"Faixa Etária", "Homens", "Mulheres", "Outros"}},
			},
		},
		{
			Code:             "404-1",
			Title:            "Média de horas de treinamento por ano",
			Dimension:        models.DimSocial,
			Framework:        models.FrameworkGRI,
			Description:      "Média de horas de treinamento que os empregados da organização receberam durante o período.",
			MaterialityScore: 4,
		},
		{
			Code:             "205-2",
			Title:            "Comunicação e treinamento sobre anticorrupção",
			Dimension:        models.DimGovernance,
			Framework:        models.FrameworkGRI,
			Description:      "Número e porcentagem de membros da governança informados sobre políticas anticorrupção.",
			MaterialityScore: 5,
		},
		{
			Code:             "201-1",
			Title:            "Valor econômico direto gerado e distribuído",
			Dimension:        models.DimEconomic,
			Framework:        models.FrameworkGRI,
			Description:      "Receitas, custos operacionais, salários, pagamentos a provedores de capital, etc.",
			MaterialityScore: 4,
		},
		{
			Code:             "ETHOS-1",
			Title:            "Visão e Estratégia",
			Dimension:        models.DimGovernance,
			Framework:        models.FrameworkEthos,
			Description:      "Avalia se a empresa possui uma visão estratégica que incorpore a responsabilidade social.",
			MaterialityScore: 5,
		},
		{
			Code:             "ETHOS-8",
			Title:            "Compromisso com o desenvolvimento infantil",
			Dimension:        models.DimSocial,
			Framework:        models.FrameworkEthos,
			Description:      "Ações da empresa para a proteção e desenvolvimento de crianças e adolescentes.",
			MaterialityScore: 4,
		},
		{
			Code:             "ETHOS-12",
			Title:            "Relações com a concorrência",
			Dimension:        models.DimEconomic,
			Framework:        models.FrameworkEthos,
			Description:      "Postura ética da empresa em relação aos seus concorrentes e práticas de mercado leal.",
			MaterialityScore: 3,
		},
		{
			Code:             "ETHOS-22",
			Title:            "Gerenciamento de impactos ambientais",
			Dimension:        models.DimEnvironmental,
			Framework:        models.FrameworkEthos,
			Description:      "Existência de políticas e práticas para gerenciar e mitigar impactos ambientais.",
			MaterialityScore: 5,
		},
	} {
		store.AddIndicator(ind)
	}
}

func seedPillars(store Store) {
	store.PutPillar(&models.Pillar{
		ID:    "p1",
		Title: "Pilar Econômico",
		ODSs:  []models.ODS{"8", "9"},
		Notebooks: []models.Notebook{
			{
				ID:    "n1",
				Title: "GRI 201: Desempenho Econômico",
				Contents: []models.FrameworkContent{
					{
						ID:          "c1",
						Code:        "201-1",
						Title:       "Valor econômico direto gerado e distribuído",
						Description: "Receitas, custos operacionais, salários, pagamentos a provedores de capital, etc.",
						Questions: []models.Question{
							{ID: "q1", Text: "Informe a receita bruta total (R$)", Type: models.QuestionNumber, Required: true},
							{ID: "q2", Text: "Informe os custos operacionais totais (R$)", Type: models.QuestionNumber, Required: true},
							{ID: "q3", Text: "Anexe o demonstrativo financeiro auditado", Type: models.QuestionFile, Required: true},
						},
					},
				},
			},
		},
	})
	store.PutPillar(&models.Pillar{
		ID:    "p2",
		Title: "Pilar Ambiental",
		ODSs:  []models.ODS{"13", "12", "7"},
		Notebooks: []models.Notebook{
			{
				ID:    "n2",
				Title: "GRI 302: Energia",
				Contents: []models.FrameworkContent{
					{
						ID:          "c2",
						Code:        "302-1",
						Title:       "Consumo de energia dentro da organização",
						Description: "Total de combustíveis e eletricidade.",
						Questions: []models.Question{
							{ID: "q4", Text: "Consumo total de eletricidade (kWh)", Type: models.QuestionNumber, Required: true},
							{ID: "q5", Text: "Consumo de combustíveis fósseis (Litros)", Type: models.QuestionNumber},
							{ID: "q6", Text: "Detalhamento", Type: models.QuestionTable, Required: true, Columns: []string{"Fonte", "Qtd", "Unidade"}},
						},
					},
				},
			},
		},
	})
}

func seedRespondents(store Store) {
	now := time.Now().UTC()
	for _, r := range []*models.Respondent{
		{ID: "r1", Name: "João Santos", Email: "jsantos@rj.sesc.br", Role: "Coordenador", Department: "Facilities", Status: models.RespondentActive, LastAccess: now.Add(-3 * time.Hour), IndicatorsAssigned: 12, IndicatorsCompleted: 8},
		{ID: "r2", Name: "Ana Financeiro", Email: "ana@rj.senac.br", Role: "Gerente", Department: "Financeiro", Status: models.RespondentActive, LastAccess: now.Add(-24 * time.Hour), IndicatorsAssigned: 8, IndicatorsCompleted: 8},
		{ID: "r3", Name: "Maria RH", Email: "mrh@fecomercio.com.br", Role: "Analista Sr", Department: "Recursos Humanos", Status: models.RespondentPending, IndicatorsAssigned: 15, IndicatorsCompleted: 2},
		{ID: "r4", Name: "Carlos TI", Email: "cti@ifs.com.br", Role: "Coordenador", Department: "Tecnologia", Status: models.RespondentInactive, LastAccess: now.Add(-15 * 24 * time.Hour), IndicatorsAssigned: 5, IndicatorsCompleted: 0},
	} {
		store.AddRespondent(r)
	}
}

func seedUsers(store Store, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	all := []models.InstitutionID{models.InstSENAC, models.InstSESC, models.InstFECOMERCIO, models.InstIFS, models.InstIFEC}
	users := []*models.UserProfile{
		{
			ID: "u1", Name: "Antonio Florencio", Email: "presidencia@fecomercio-rj.org.br",
			Role:                models.RolePresident,
			AllowedInstitutions: append(append([]models.InstitutionID{}, all...), models.InstGROUP),
		},
		{
			ID: "u2", Name: "Caio Azeredo", Email: "cazeredo@rj.senac.br",
			Role: models.RoleASGManager, Department: "Sustentabilidade",
			AllowedInstitutions: all,
		},
		{
			ID: "u3", Name: "Maria Silva", Email: "auditoria@fecomercio.com.br",
			Role: models.RoleInternalAuditor, Department: "Auditoria Interna",
			AllowedInstitutions: all,
		},
		{
			ID: "u4", Name: "João Santos", Email: "jsantos@rj.sesc.br",
			Role: models.RoleAreaCoordinator, Department: "Facilities / Infraestrutura",
			AllowedInstitutions: []models.InstitutionID{models.InstSESC},
		},
	}
	for _, u := range users {
		u.Permissions = services.PermissionsForRole(u.Role)
		u.PassHash = hash
		if err := store.AddUser(u); err != nil {
			return err
		}
	}
	return nil
}

func seedProjects(store Store) {
	store.AddProject(&models.ImpactProject{
		ID:            "proj_1",
		Title:         "NITERÓI JOVEM ECOSOCIAL",
		Subtitle:      "SENAC RJ",
		InstitutionID: models.InstSENAC,
		Status:        models.ProjectApproved,
		ODSs:          []models.ODS{"1", "4"},
		Pillars:       []string{"IMPACTO AMBIENTAL", "EDUCAÇÃO TRANSFORMADORA"},
		MainGoal:      "Qualificar profissionalmente jovens de 16 a 24 anos oriundos de comunidades da cidade de Niterói com foco em empregabilidade e geração de renda.",
		Description:   "O Programa Niterói Jovem Eco Social existe desde 2019, estando na sua terceira edição em 2024. É estruturado em 3 pilares: desenvolvimento humano, qualificação profissional e educação socioambiental.",
		Context:       "O programa faz parte do ecossistema de ações da Prefeitura de Niterói contra a violência e a favor da paz.",
		Challenges:    "São 600 alunos acompanhados durante 18 meses. É fundamental garantir a permanência dos alunos no programa, evitando a evasão.",
		ResponsibleName:   "Patrick Costa",
		ResponsibleEmail:  "patrick.costa@rj.senac.br",
		BeneficiariesText: "600 jovens de 16 a 24 anos, com renda familiar entre 1 a 2 salários mínimos, oriundos de 20 comunidades da cidade de Niterói.",
		LocationText:      "20 comunidades de Niterói",
		AccessType:        "Acesso gratuito",
		InvestmentAmount:  "R$ 27,9 milhões",
		FundingSource:     "Prefeitura de Niterói - Secretaria de Participação Social",
		Metrics: []string{
			"Evasão - Quantidade de alunos evadidos e/ou que desistiram",
			"% de execução do projeto - Qual fase o projeto está e qual a quantidade de turmas executadas",
			"Custo - Orçado x Realizado",
		},
		LastUpdated: time.Now().UTC(),
	})
}

// seedGapResponses opens gaps with deadlines placed exactly on each
// escalation boundary so a first sweep produces one entry per tier.
func seedGapResponses(store Store) {
	now := time.Now().UTC()
	deadline := func(days int) string {
		return now.AddDate(0, 0, days).Format("2006-01-02")
	}
	gaps := []struct {
		code string
		resp string
		days int
	}{
		{"305-1", "r1", 7},
		{"404-1", "r3", 0},
		{"302-1", "r1", -7},
		{"201-1", "r2", -30},
	}
	for _, g := range gaps {
		store.PutResponse(&models.Response{
			IndicatorCode:           g.code,
			Option:                  models.OptionNoData,
			Status:                  models.StatusGapOpen,
			AssignedUserID:          g.resp,
			Deadline:                deadline(g.days),
			GapReason:               "Dado nunca foi medido pela organização.",
			GapType:                 models.GapNeverMeasured,
			EstimatedResolutionDate: deadline(g.days),
			LastUpdated:             now,
		})
	}
}

func seedOrgChart(chart *services.OrgChartService) {
	rootID := chart.SetRoot(models.HierarchyNode{
		ID: "1", Type: models.NodeSector, Name: "Presidência do Sistema",
		Level: models.LevelPresidency, ResponsibleName: "Antonio Florencio",
		ResponsibleEmail: "presidencia@fecomercio-rj.org.br", InstitutionID: models.InstGROUP,
	})
	add := func(parent string, n models.HierarchyNode) string {
		id, _ := chart.Add(parent, n)
		return id
	}
	senac := add(rootID, models.HierarchyNode{
		ID: "2", Type: models.NodeSector, Name: "Diretoria Executiva Senac RJ",
		Level: models.LevelExecutiveDirection, ResponsibleName: "Diretor Senac",
		ResponsibleEmail: "diretoria@rj.senac.br", InstitutionID: models.InstSENAC,
	})
	ti := add(senac, models.HierarchyNode{
		ID: "21", Type: models.NodeSector, Name: "Gerência de TI",
		Level: models.LevelManagement, ResponsibleName: "Gestor TI",
		ResponsibleEmail: "ti@rj.senac.br", InstitutionID: models.InstSENAC,
	})
	dev := add(ti, models.HierarchyNode{
		ID: "211", Type: models.NodeSector, Name: "Setor de Desenvolvimento",
		Level: models.LevelOperationalSector, ResponsibleName: "Líder Dev",
		ResponsibleEmail: "dev@rj.senac.br", InstitutionID: models.InstSENAC,
	})
	add(dev, models.HierarchyNode{
		ID: "p1", Type: models.NodePerson, Name: "Dev Senior 1", Role: "Analista Pleno",
		Level: models.LevelStaff, ResponsibleEmail: "dev1@rj.senac.br",
	})
	add(ti, models.HierarchyNode{
		ID: "212", Type: models.NodeSector, Name: "Setor de Infraestrutura",
		Level: models.LevelOperationalSector, ResponsibleName: "Líder Infra",
		ResponsibleEmail: "infra@rj.senac.br", InstitutionID: models.InstSENAC,
	})
	rh := add(senac, models.HierarchyNode{
		ID: "22", Type: models.NodeSector, Name: "Gerência de RH",
		Level: models.LevelManagement, ResponsibleName: "Gestora RH",
		ResponsibleEmail: "rh@rj.senac.br", InstitutionID: models.InstSENAC,
	})
	add(rh, models.HierarchyNode{
		ID: "221", Type: models.NodeSector, Name: "Recrutamento",
		Level: models.LevelOperationalSector, ResponsibleName: "Analista Sr",
		ResponsibleEmail: "recrutamento@rj.senac.br", InstitutionID: models.InstSENAC,
	})
	sesc := add(rootID, models.HierarchyNode{
		ID: "3", Type: models.NodeSector, Name: "Diretoria Executiva Sesc RJ",
		Level: models.LevelExecutiveDirection, ResponsibleName: "Diretor Sesc",
		ResponsibleEmail: "diretoria@rj.sesc.br", InstitutionID: models.InstSESC,
	})
	add(sesc, models.HierarchyNode{
		ID: "31", Type: models.NodeSector, Name: "Gerência de Cultura",
		Level: models.LevelManagement, ResponsibleName: "Gestor Cultura",
		ResponsibleEmail: "cultura@rj.sesc.br", InstitutionID: models.InstSESC,
	})
}
