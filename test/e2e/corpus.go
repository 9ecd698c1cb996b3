// Package e2e drives the full HTTP API with a corpus of resume files.
//
// Scoring background for the assertions: the mock embedder is deterministic
// over the cleaned text, so a query whose cleaned form equals a stored
// resume's cleaned text scores exactly 1.0, while unrelated texts land well
// below the 0.99 cutoff the suite searches with. Expected matches are
// therefore computed, not hand-maintained: a resume is expected for a query
// exactly when the two clean to the same string.
package e2e

import (
	"fmt"
	"strings"

	"github.com/hyperjump/jinzai/internal/intake"
)

// E2EResume is a single corpus file to submit.
type E2EResume struct {
	Filename string
	Content  string
}

// QueryTestCase pairs a search query with the filenames that must appear in
// its results.
type QueryTestCase struct {
	Query             string
	ExpectedFilenames []string
	Description       string
}

// Corpus is the full set of resumes and query test cases for a run.
type Corpus struct {
	Resumes      []E2EResume
	TestCases    []QueryTestCase
	TotalResumes int
	TotalQueries int
}

// BuildCorpus assembles the standard end-to-end corpus: 60 resume files over
// 40 distinct profiles, so 20 contents appear twice under different filenames.
func BuildCorpus() *Corpus {
	resumes := buildResumes(60)
	cases := buildQueryTestCases(resumes)
	return &Corpus{
		Resumes:      resumes,
		TestCases:    cases,
		TotalResumes: len(resumes),
		TotalQueries: len(cases),
	}
}

// profile is one candidate: a filename stem and the resume body.
type profile struct {
	stem    string
	content string
}

// profiles hold realistic short resumes across tech and non-tech roles. The
// contents stay under the preview length and the embedding word limit, so the
// stored preview is the full text and survives delete-triggered rebuilds
// byte for byte. Keep the bodies free of &, < and > so the same strings can
// be embedded in docx fixtures unescaped.
var profiles = []profile{
	{"python-backend", "Jordan Alvarez. Senior Python backend engineer with 8 years building Django and FastAPI services. Designed event driven pipelines on AWS with Kafka and PostgreSQL."},
	{"golang-platform", "Priya Raman. Staff platform engineer specializing in Go microservices, gRPC APIs and Kubernetes operators. Led the migration of a monolith to 40 services."},
	{"frontend-react", "Marcus Webb. Frontend developer focused on React, TypeScript and design systems. Shipped accessibility improvements reaching WCAG AA across three products."},
	{"data-scientist", "Elena Volkov. Data scientist with a PhD in statistics. Built churn prediction models with scikit-learn and XGBoost serving 2 million users."},
	{"site-reliability", "Ahmed Hassan. Site reliability engineer running Terraform, Prometheus and Grafana. Cut infrastructure costs 30 percent while holding four nines availability."},
	{"ios-engineer", "Sofia Marino. iOS engineer shipping Swift and SwiftUI apps since 2016. Rebuilt a payments flow used by 500 thousand customers monthly."},
	{"android-developer", "Daniel Okafor. Android developer working in Kotlin with Jetpack Compose. Reduced app startup time 40 percent through baseline profiles."},
	{"ml-engineer", "Lucia Fernandez. Machine learning engineer deploying transformer models to production. Built a feature store and real time inference on Kubernetes."},
	{"security-analyst", "Viktor Petrov. Security analyst with OSCP certification. Led penetration tests and incident response for a fintech handling card data."},
	{"database-admin", "Grace Liu. Database administrator tuning PostgreSQL and MySQL clusters. Designed a zero downtime migration of 4 terabytes."},
	{"qa-automation", "Tomas Novak. QA automation engineer building Selenium and Playwright suites. Raised regression coverage from 20 to 85 percent."},
	{"embedded-systems", "Ingrid Larsen. Embedded systems engineer writing C and Rust for automotive controllers. Certified in ISO 26262 functional safety."},
	{"cloud-architect", "Rafael Costa. Cloud architect designing multi region AWS deployments. Certified solutions architect professional since 2019."},
	{"product-manager", "Hannah Kim. Product manager for developer tools. Drove the roadmap for an API platform growing from 1 to 20 million requests daily."},
	{"ux-designer", "Oliver Bennett. UX designer with a research background. Ran usability studies and redesigned onboarding, lifting activation 25 percent."},
	{"technical-writer", "Amara Diallo. Technical writer documenting REST APIs and SDKs. Built a docs as code pipeline with Hugo and CI review gates."},
	{"icu-nurse", "Camille Laurent. Registered nurse with 10 years in intensive care units. Certified in critical care nursing and rapid response."},
	{"accountant-cpa", "Robert Chen. Certified public accountant preparing consolidated financial statements. Led audits for manufacturing clients up to 200 million revenue."},
	{"corporate-attorney", "Isabella Rossi. Corporate attorney advising on mergers and acquisitions. Closed 14 deals totaling 2 billion in transaction value."},
	{"math-teacher", "Samuel Adeyemi. High school mathematics teacher and department head. Raised AP calculus pass rates from 60 to 90 percent."},
	{"growth-marketing", "Julia Schmidt. Growth marketing manager running paid acquisition and SEO. Scaled monthly signups from 2 to 30 thousand."},
	{"enterprise-sales", "David Park. Enterprise sales executive selling B2B SaaS. Exceeded quota five consecutive years with 120 percent average attainment."},
	{"tech-recruiter", "Fatima Malik. Technical recruiter filling engineering and data roles. Built sourcing pipelines that cut time to hire to 28 days."},
	{"pastry-chef", "Antoine Dubois. Pastry chef trained in Lyon. Ran the dessert programs of two Michelin starred restaurants."},
	{"logistics-manager", "Chen Wei. Logistics manager optimizing warehouse operations. Implemented a warehouse management system reducing picking errors 45 percent."},
	{"civil-engineer", "Maria Santos. Civil engineer designing bridges and highway interchanges. Licensed professional engineer in three states."},
	{"master-electrician", "James O'Brien. Master electrician with commercial and industrial experience. Supervised crews on hospital and data center builds."},
	{"clinical-pharmacist", "Leila Nasser. Clinical pharmacist in hospital settings. Specialized in oncology medication therapy management."},
	{"journalist", "Erik Johansson. Investigative journalist covering technology policy. Published in three national outlets and won a regional press award."},
	{"translator", "Yuki Tanaka. Translator working between Japanese and English. Localized software products and legal contracts for 12 years."},
	{"research-scientist", "Nina Kowalski. Research scientist in molecular biology. Published 9 papers on CRISPR gene editing applications."},
	{"financial-analyst", "Carlos Mendoza. Financial analyst building DCF models and quarterly forecasts. CFA charterholder covering industrial equities."},
	{"veterinarian", "Emma Fitzgerald. Small animal veterinarian with surgical experience. Managed a practice seeing 40 patients daily."},
	{"building-architect", "Hassan Al-Rashid. Licensed architect designing sustainable commercial buildings. LEED accredited professional with 15 completed projects."},
	{"social-worker", "Rosa Delgado. Licensed clinical social worker in community mental health. Carried a caseload of 60 clients with crisis intervention duties."},
	{"airline-pilot", "Mark Stevens. Commercial airline pilot with 8000 flight hours. Type rated on the Boeing 737 and Airbus A320."},
	{"game-developer", "Alexei Morozov. Game developer working in Unity and Unreal Engine. Shipped three titles including a million seller."},
	{"blockchain-engineer", "Sarah Goldberg. Blockchain engineer building Solidity smart contracts. Audited DeFi protocols holding 300 million in value."},
	{"support-lead", "Kwame Mensah. Customer support team lead for a developer platform. Kept satisfaction above 95 percent while halving response times."},
	{"data-engineer", "Anya Sharma. Data engineer building Spark and Airflow pipelines. Moved a petabyte warehouse from Redshift to Snowflake."},
}

// buildResumes produces n resume files. Past the profile table it wraps
// around, reusing earlier contents under new filenames. Duplicate contents
// are deliberate: they exercise ties at the top score and survivor handling
// when one copy is deleted.
func buildResumes(n int) []E2EResume {
	resumes := make([]E2EResume, 0, n)
	for i := 0; i < n; i++ {
		p := profiles[i%len(profiles)]
		resumes = append(resumes, E2EResume{
			Filename: fmt.Sprintf("resume-%03d-%s.txt", i+1, p.stem),
			Content:  p.content,
		})
	}
	return resumes
}

// candidateQuery is a query string before its expected matches are known.
type candidateQuery struct {
	query string
	label string
}

// buildQueryTestCases derives the query set from the resumes themselves: the
// exact text of the first twenty files, plus noisy variants of a few more.
// Expectations come from cleaning both sides with the same preprocessing the
// embedder input goes through.
func buildQueryTestCases(resumes []E2EResume) []QueryTestCase {
	if len(resumes) < 24 {
		return nil
	}

	candidates := make([]candidateQuery, 0, 24)
	for i := 0; i < 20; i++ {
		candidates = append(candidates, candidateQuery{
			query: resumes[i].Content,
			label: fmt.Sprintf("exact text of %s", resumes[i].Filename),
		})
	}
	// Case, punctuation and spacing noise must not change the match.
	candidates = append(candidates,
		candidateQuery{strings.ToUpper(resumes[20].Content), fmt.Sprintf("uppercased text of %s", resumes[20].Filename)},
		candidateQuery{resumes[21].Content + "!!!", fmt.Sprintf("trailing punctuation on text of %s", resumes[21].Filename)},
		candidateQuery{"   " + resumes[22].Content + "   ", fmt.Sprintf("padded text of %s", resumes[22].Filename)},
		candidateQuery{strings.ReplaceAll(resumes[23].Content, " ", "   "), fmt.Sprintf("respaced text of %s", resumes[23].Filename)},
	)

	cases := make([]QueryTestCase, 0, len(candidates))
	for _, c := range candidates {
		cleaned := intake.Preprocess(c.query)
		expected := make([]string, 0, 2)
		for _, r := range resumes {
			if intake.Preprocess(r.Content) == cleaned {
				expected = append(expected, r.Filename)
			}
		}
		if len(expected) == 0 {
			continue
		}
		cases = append(cases, QueryTestCase{
			Query:             c.query,
			ExpectedFilenames: expected,
			Description:       c.label,
		})
	}
	return cases
}
