package questionbank

// Category names of the built-in procurement bank.
const (
	CategoryStrategy    = "Stratégie Achats"
	CategoryRisk        = "Gestion des Risques"
	CategoryInternal    = "Relations avec Partenaires Internes"
	CategorySuppliers   = "Gestion Fournisseurs"
	CategoryDigital     = "Digitalisation & Outils"
	CategoryPerformance = "Performance & Pilotage"
)

// optionMod adjusts a graded option set after construction.
type optionMod func([]Option)

// graded builds five options scored 1 to 5 in order, all "continue".
func graded(texts [5]string, mods ...optionMod) []Option {
	out := make([]Option, len(texts))
	for i, t := range texts {
		out[i] = Option{Text: t, Score: i + 1, Action: ActionContinue}
	}
	for _, m := range mods {
		m(out)
	}
	return out
}

// deepDiveUpTo marks every option scoring at most limit as "deep_dive".
func deepDiveUpTo(limit int) optionMod {
	return func(opts []Option) {
		for i := range opts {
			if opts[i].Score <= limit {
				opts[i].Action = ActionDeepDive
			}
		}
	}
}

// skipAt marks the option scoring score as "skip_category".
func skipAt(score int) optionMod {
	return func(opts []Option) {
		for i := range opts {
			if opts[i].Score == score {
				opts[i].Action = ActionSkipCategory
			}
		}
	}
}

// triggerAt attaches triggers to the option scoring score.
func triggerAt(score int, ids ...string) optionMod {
	return func(opts []Option) {
		for i := range opts {
			if opts[i].Score == score {
				opts[i].Triggers = append(opts[i].Triggers, ids...)
			}
		}
	}
}

func mainQuestion(id, category string, p Priority, text string, opts []Option) Question {
	return Question{ID: id, Category: category, Text: text, Priority: p, Options: opts}
}

func followUp(id, parent, category string, level int, text string, opts []Option) Question {
	return Question{
		ID:            id,
		Category:      category,
		Text:          text,
		Priority:      PriorityMedium,
		Options:       opts,
		IsFollowUp:    true,
		ParentID:      parent,
		FollowUpLevel: level,
	}
}

// seedQuestions returns the built-in bank. Per category: a high-priority
// lead that opens two follow-ups on low scores and closes the category on
// a top score, one level-2 follow-up reached from the lead's first
// follow-up, then a medium and a low main question.
func seedQuestions() []Question {
	var qs []Question
	qs = append(qs, strategyQuestions()...)
	qs = append(qs, riskQuestions()...)
	qs = append(qs, internalQuestions()...)
	qs = append(qs, supplierQuestions()...)
	qs = append(qs, digitalQuestions()...)
	qs = append(qs, performanceQuestions()...)
	return qs
}

func strategyQuestions() []Question {
	c := CategoryStrategy
	return []Question{
		mainQuestion("strat-1", c, PriorityHigh,
			"Votre organisation dispose-t-elle d'une stratégie achats formalisée et alignée sur la stratégie de l'entreprise ?",
			graded([5]string{
				"Aucune stratégie achats n'est définie",
				"Quelques orientations informelles existent",
				"Une stratégie existe mais n'est pas partagée",
				"Une stratégie formalisée est revue chaque année",
				"La stratégie achats est co-construite avec la direction générale et pilotée",
			}, deepDiveUpTo(2), skipAt(5))),
		followUp("strat-1-a", "strat-1", c, 1,
			"Les catégories d'achats font-elles l'objet de stratégies dédiées ?",
			graded([5]string{
				"Aucune segmentation des achats",
				"Segmentation ponctuelle sur quelques familles",
				"Segmentation des principales familles",
				"Stratégies par catégorie pour les familles clés",
				"Stratégies par catégorie systématiques et mises à jour",
			}, triggerAt(1, "strat-1-a-1"))),
		followUp("strat-1-a-1", "strat-1-a", c, 2,
			"Disposez-vous d'une cartographie des dépenses par fournisseur et par famille ?",
			graded([5]string{
				"Aucune visibilité sur les dépenses",
				"Extractions comptables ponctuelles",
				"Cartographie annuelle partielle",
				"Cartographie complète mise à jour chaque année",
				"Spend analysis continue et partagée",
			})),
		followUp("strat-1-b", "strat-1", c, 1,
			"Les objectifs achats sont-ils déclinés en plans d'action chiffrés ?",
			graded([5]string{
				"Aucun objectif achats",
				"Objectifs de gains uniquement",
				"Objectifs chiffrés sans plan d'action",
				"Plans d'action suivis par famille",
				"Plans d'action intégrés au budget de l'entreprise",
			})),
		mainQuestion("strat-2", c, PriorityMedium,
			"Les achats participent-ils aux décisions make-or-buy et aux projets en amont ?",
			graded([5]string{
				"Jamais",
				"Rarement, en fin de projet",
				"Sur les projets les plus importants",
				"Systématiquement sur les projets significatifs",
				"Les achats sont membres permanents des instances de décision",
			}, skipAt(5))),
		mainQuestion("strat-3", c, PriorityLow,
			"La politique achats intègre-t-elle des critères RSE ?",
			graded([5]string{
				"Aucun critère RSE",
				"Mentions générales dans les appels d'offres",
				"Critères RSE sur certaines familles",
				"Critères RSE pondérés dans toutes les consultations",
				"Politique achats responsables labellisée et auditée",
			}, skipAt(5))),
	}
}

func riskQuestions() []Question {
	c := CategoryRisk
	return []Question{
		mainQuestion("risk-1", c, PriorityHigh,
			"Les risques fournisseurs sont-ils identifiés et évalués de façon structurée ?",
			graded([5]string{
				"Aucune évaluation des risques",
				"Évaluation au cas par cas après incident",
				"Évaluation des fournisseurs stratégiques",
				"Cartographie des risques mise à jour régulièrement",
				"Dispositif de maîtrise des risques intégré au processus achats",
			}, deepDiveUpTo(2), skipAt(5))),
		followUp("risk-1-a", "risk-1", c, 1,
			"Connaissez-vous vos fournisseurs en situation de mono-source ?",
			graded([5]string{
				"Non, aucune visibilité",
				"Quelques cas connus de manière informelle",
				"Liste établie pour les familles critiques",
				"Liste complète avec plans de secours identifiés",
				"Plans de continuité testés pour chaque mono-source",
			}, triggerAt(1, "risk-1-a-1"))),
		followUp("risk-1-a-1", "risk-1-a", c, 2,
			"Suivez-vous la santé financière de vos fournisseurs critiques ?",
			graded([5]string{
				"Jamais",
				"Lors du référencement uniquement",
				"Revue annuelle des bilans",
				"Surveillance par un service de notation",
				"Alertes automatiques reliées au plan de continuité",
			})),
		followUp("risk-1-b", "risk-1", c, 1,
			"Les clauses contractuelles couvrent-elles les risques identifiés ?",
			graded([5]string{
				"Pas de contrats cadres",
				"Contrats standards sans clauses de risque",
				"Clauses de risque sur les contrats majeurs",
				"Clauses adaptées à chaque niveau de risque",
				"Clauses revues avec le juridique et suivies dans le temps",
			})),
		mainQuestion("risk-2", c, PriorityMedium,
			"Votre dispositif de conformité fournisseurs (sanctions, anticorruption, devoir de vigilance) est-il opérationnel ?",
			graded([5]string{
				"Aucun contrôle de conformité",
				"Contrôles déclaratifs",
				"Contrôles sur les nouveaux fournisseurs",
				"Contrôles périodiques sur l'ensemble du panel",
				"Contrôles automatisés et audits sur site",
			}, skipAt(5))),
		mainQuestion("risk-3", c, PriorityLow,
			"Réalisez-vous des exercices de gestion de crise avec vos fournisseurs ?",
			graded([5]string{
				"Jamais",
				"Uniquement en situation réelle",
				"Ponctuellement avec quelques fournisseurs",
				"Annuellement avec les fournisseurs critiques",
				"Exercices réguliers avec retour d'expérience partagé",
			}, skipAt(5))),
	}
}

func internalQuestions() []Question {
	c := CategoryInternal
	return []Question{
		mainQuestion("part-1", c, PriorityHigh,
			"Comment qualifieriez-vous la collaboration entre les achats et les prescripteurs internes ?",
			graded([5]string{
				"Les achats sont contournés",
				"Les achats interviennent en fin de processus",
				"Collaboration correcte sur les gros dossiers",
				"Les prescripteurs sollicitent les achats en amont",
				"Partenariat établi avec des objectifs communs",
			}, deepDiveUpTo(2), skipAt(5))),
		followUp("part-1-a", "part-1", c, 1,
			"Les besoins internes sont-ils exprimés dans un cahier des charges fonctionnel ?",
			graded([5]string{
				"Jamais, la demande cite une marque ou un fournisseur",
				"Rarement",
				"Pour les achats importants",
				"Le plus souvent, avec l'aide des achats",
				"Systématiquement, avec un modèle partagé",
			}, triggerAt(1, "part-1-a-1"))),
		followUp("part-1-a-1", "part-1-a", c, 2,
			"Les prescripteurs sont-ils formés aux enjeux et aux règles achats ?",
			graded([5]string{
				"Aucune formation",
				"Une documentation existe mais n'est pas diffusée",
				"Sensibilisation ponctuelle",
				"Formation lors de l'arrivée des nouveaux collaborateurs",
				"Programme de formation continu et évalué",
			})),
		followUp("part-1-b", "part-1", c, 1,
			"La satisfaction des clients internes est-elle mesurée ?",
			graded([5]string{
				"Jamais",
				"Retours informels",
				"Enquête ponctuelle",
				"Enquête annuelle avec plan d'amélioration",
				"Mesure continue intégrée aux objectifs des acheteurs",
			})),
		mainQuestion("part-2", c, PriorityMedium,
			"Le circuit de validation des demandes d'achat est-il clair et respecté ?",
			graded([5]string{
				"Pas de circuit défini",
				"Circuit défini mais souvent contourné",
				"Circuit respecté au-delà d'un seuil",
				"Circuit respecté et outillé",
				"Circuit optimisé avec délais de validation mesurés",
			}, skipAt(5))),
		mainQuestion("part-3", c, PriorityLow,
			"La finance et les achats partagent-ils une vision commune des gains ?",
			graded([5]string{
				"Aucune vision commune",
				"Désaccords fréquents sur les gains",
				"Méthode de calcul partagée sur certains dossiers",
				"Méthode de calcul validée par la finance",
				"Gains intégrés et suivis dans le budget",
			}, skipAt(5))),
	}
}

func supplierQuestions() []Question {
	c := CategorySuppliers
	return []Question{
		mainQuestion("four-1", c, PriorityHigh,
			"Votre panel fournisseurs est-il piloté et régulièrement rationalisé ?",
			graded([5]string{
				"Aucune gestion de panel",
				"Liste de fournisseurs non maintenue",
				"Panel défini pour les familles principales",
				"Panel revu chaque année avec des critères objectifs",
				"Panel segmenté avec une gouvernance dédiée",
			}, deepDiveUpTo(2), skipAt(5))),
		followUp("four-1-a", "four-1", c, 1,
			"Évaluez-vous la performance de vos fournisseurs ?",
			graded([5]string{
				"Jamais",
				"Après un litige uniquement",
				"Évaluation annuelle des fournisseurs majeurs",
				"Indicateurs de performance suivis trimestriellement",
				"Revues de performance partagées avec plans de progrès",
			}, triggerAt(1, "four-1-a-1"))),
		followUp("four-1-a-1", "four-1-a", c, 2,
			"Les non-conformités fournisseurs sont-elles tracées ?",
			graded([5]string{
				"Aucune traçabilité",
				"Traçabilité dans des courriels",
				"Registre tenu par la qualité",
				"Registre partagé avec les achats",
				"Traçabilité outillée avec analyse des causes",
			})),
		followUp("four-1-b", "four-1", c, 1,
			"Le référencement d'un nouveau fournisseur suit-il un processus formalisé ?",
			graded([5]string{
				"Aucun processus",
				"Création de compte fournisseur sans contrôle",
				"Contrôles administratifs de base",
				"Processus formalisé avec validation des achats",
				"Processus outillé incluant qualification technique et conformité",
			})),
		mainQuestion("four-2", c, PriorityMedium,
			"Entretenez-vous des relations partenariales avec vos fournisseurs stratégiques ?",
			graded([5]string{
				"Relations purement transactionnelles",
				"Rencontres ponctuelles",
				"Revues d'affaires annuelles",
				"Plans de développement conjoints",
				"Programme de gestion de la relation fournisseur structuré",
			}, skipAt(5))),
		mainQuestion("four-3", c, PriorityLow,
			"Collectez-vous l'innovation proposée par vos fournisseurs ?",
			graded([5]string{
				"Jamais",
				"De manière fortuite",
				"Sur demande lors de consultations",
				"Démarche organisée avec quelques fournisseurs",
				"Programme d'innovation ouverte avec le panel",
			}, skipAt(5))),
	}
}

func digitalQuestions() []Question {
	c := CategoryDigital
	return []Question{
		mainQuestion("digi-1", c, PriorityHigh,
			"Quel est le niveau d'outillage de votre processus achats ?",
			graded([5]string{
				"Processus entièrement manuel",
				"Tableurs et messagerie",
				"ERP pour les commandes uniquement",
				"Suite achats couvrant la majorité du processus",
				"Processus source-to-pay entièrement digitalisé",
			}, deepDiveUpTo(2), skipAt(5))),
		followUp("digi-1-a", "digi-1", c, 1,
			"Les données fournisseurs sont-elles centralisées dans un référentiel unique ?",
			graded([5]string{
				"Données dispersées",
				"Plusieurs référentiels non synchronisés",
				"Référentiel unique peu fiable",
				"Référentiel unique maintenu",
				"Référentiel unique gouverné avec contrôles de qualité",
			}, triggerAt(1, "digi-1-a-1"))),
		followUp("digi-1-a-1", "digi-1-a", c, 2,
			"Un responsable de la qualité des données achats est-il désigné ?",
			graded([5]string{
				"Non",
				"Rôle implicite",
				"Rôle partagé entre plusieurs personnes",
				"Responsable désigné",
				"Responsable désigné avec indicateurs de qualité",
			})),
		followUp("digi-1-b", "digi-1", c, 1,
			"Les consultations sont-elles réalisées via une plateforme dématérialisée ?",
			graded([5]string{
				"Jamais",
				"Par messagerie",
				"Plateforme pour certains appels d'offres",
				"Plateforme pour la majorité des consultations",
				"Plateforme systématique avec enchères électroniques",
			})),
		mainQuestion("digi-2", c, PriorityMedium,
			"Utilisez-vous des outils d'analyse des dépenses ?",
			graded([5]string{
				"Aucun outil",
				"Extractions manuelles",
				"Tableaux de bord statiques",
				"Outil de spend analysis dédié",
				"Analyses prédictives et tableaux de bord dynamiques",
			}, skipAt(5))),
		mainQuestion("digi-3", c, PriorityLow,
			"Avez-vous engagé des projets d'automatisation ou d'intelligence artificielle dans les achats ?",
			graded([5]string{
				"Aucun projet",
				"Réflexion en cours",
				"Preuve de concept réalisée",
				"Cas d'usage en production",
				"Feuille de route digitale achats financée",
			}, skipAt(5))),
	}
}

func performanceQuestions() []Question {
	c := CategoryPerformance
	return []Question{
		mainQuestion("perf-1", c, PriorityHigh,
			"La performance de la fonction achats est-elle mesurée par des indicateurs partagés ?",
			graded([5]string{
				"Aucun indicateur",
				"Indicateurs calculés occasionnellement",
				"Quelques indicateurs suivis par les achats",
				"Tableau de bord mensuel partagé avec la direction",
				"Système de pilotage complet relié aux objectifs de l'entreprise",
			}, deepDiveUpTo(2), skipAt(5))),
		followUp("perf-1-a", "perf-1", c, 1,
			"Mesurez-vous les gains achats selon une méthode reconnue ?",
			graded([5]string{
				"Aucune mesure des gains",
				"Estimation déclarative",
				"Méthode interne non validée",
				"Méthode validée par la finance",
				"Gains audités et rapprochés des comptes",
			}, triggerAt(1, "perf-1-a-1"))),
		followUp("perf-1-a-1", "perf-1-a", c, 2,
			"Le taux de couverture contractuelle des dépenses est-il connu ?",
			graded([5]string{
				"Inconnu",
				"Estimé",
				"Calculé une fois par an",
				"Suivi trimestriellement",
				"Suivi en continu avec objectifs",
			})),
		followUp("perf-1-b", "perf-1", c, 1,
			"Les objectifs individuels des acheteurs sont-ils reliés aux indicateurs ?",
			graded([5]string{
				"Pas d'objectifs individuels",
				"Objectifs qualitatifs",
				"Objectifs de gains uniquement",
				"Objectifs équilibrés (coûts, qualité, délais)",
				"Objectifs équilibrés incluant RSE et satisfaction interne",
			})),
		mainQuestion("perf-2", c, PriorityMedium,
			"Réalisez-vous des revues de performance achats avec la direction ?",
			graded([5]string{
				"Jamais",
				"Sur demande",
				"Une fois par an",
				"Chaque trimestre",
				"Chaque mois avec décisions tracées",
			}, skipAt(5))),
		mainQuestion("perf-3", c, PriorityLow,
			"Vous comparez-vous à d'autres organisations (benchmark) ?",
			graded([5]string{
				"Jamais",
				"Informellement",
				"Ponctuellement via des études publiques",
				"Régulièrement via un réseau professionnel",
				"Benchmark structuré avec plan d'amélioration",
			}, skipAt(5))),
	}
}
