package analysis

import "strings"

const (
	SizeEnterprise = "Enterprise"
	SizeStartup    = "Startup"

	defaultIndustry = "Technology Services"
)

// CompanyIntel is the heuristic company profile attached to an analysis.
type CompanyIntel struct {
	Name        string `json:"name"`
	Industry    string `json:"industry"`
	Size        string `json:"size"`
	HiringFocus string `json:"hiringFocus"`
}

// IsEnterprise reports whether the profile was classified as an enterprise.
func (c CompanyIntel) IsEnterprise() bool {
	return c.Size == SizeEnterprise
}

var knownEnterprises = []string{
	"tcs", "infosys", "wipro", "hcl", "accenture", "capgemini", "cognizant", "ibm", "deloitte",
	"amazon", "google", "microsoft", "adobe", "salesforce", "oracle", "cisco", "intel", "samsung",
}

var industryRules = []struct {
	needles  []string
	industry string
}{
	{needles: []string{"bank", "financial"}, industry: "FinTech"},
	{needles: []string{"health", "pharma"}, industry: "HealthTech"},
	{needles: []string{"retail", "commerce"}, industry: "E-commerce"},
	{needles: []string{"auto"}, industry: "Automotive"},
}

// GenerateCompanyIntel classifies a company name as enterprise or startup and
// infers an industry from generic words in the name.
func GenerateCompanyIntel(companyName string) CompanyIntel {
	normalized := strings.ToLower(strings.TrimSpace(companyName))
	if normalized == "" {
		return CompanyIntel{
			Name:        "",
			Industry:    defaultIndustry,
			Size:        SizeStartup,
			HiringFocus: "Practical problem solving + stack depth",
		}
	}

	industry := defaultIndustry
	for _, rule := range industryRules {
		if containsAny(normalized, rule.needles) {
			industry = rule.industry
			break
		}
	}

	if containsAny(normalized, knownEnterprises) {
		return CompanyIntel{
			Name:        companyName,
			Industry:    industry,
			Size:        SizeEnterprise,
			HiringFocus: "Structured DSA + Core CS fundamentals + System Design basics",
		}
	}

	return CompanyIntel{
		Name:        companyName,
		Industry:    industry,
		Size:        SizeStartup,
		HiringFocus: "Practical coding, Framework depth, and Culture fit",
	}
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
