package report

// SectionID identifies one report section. The set is closed: dispatch is
// a static map over these constants, not free-form strings.
type SectionID string

const (
	SectionYearlyOpen     SectionID = "yearly_open"
	SectionPriorityDist   SectionID = "priority_dist"
	SectionLineManager    SectionID = "line_manager"
	SectionDepartment     SectionID = "department"
	SectionTool           SectionID = "tool"
	SectionSLA            SectionID = "sla"
	SectionTrend          SectionID = "trend"
	SectionTop10          SectionID = "top10"
	SectionIPDensity      SectionID = "ip_density"
	SectionResolutionTime SectionID = "resolution_time"
	SectionSLABreach      SectionID = "sla_breach"
)

// AllSections returns every section in canonical report order.
func AllSections() []SectionID {
	return []SectionID{
		SectionYearlyOpen,
		SectionPriorityDist,
		SectionLineManager,
		SectionDepartment,
		SectionTool,
		SectionSLA,
		SectionTrend,
		SectionTop10,
		SectionIPDensity,
		SectionResolutionTime,
		SectionSLABreach,
	}
}

// Kind tells the renderer which payload a section carries.
type Kind string

const (
	KindBar   Kind = "bar"
	KindPie   Kind = "pie"
	KindLine  Kind = "line"
	KindHist  Kind = "hist"
	KindStats Kind = "stats"
	KindTable Kind = "table"
)

// Language selects the report text language. It is a plain value threaded
// through the builder config; nothing below the report layer sees it.
type Language struct {
	Code string // "TR" or "EN"
}

// Label picks the localized variant for the configured language.
func (l Language) Label(tr, en string) string {
	if l.Code == "EN" {
		return en
	}
	return tr
}

// sectionTitle holds both language variants of a section heading.
type sectionTitle struct {
	TR string
	EN string
}

var sectionTitles = map[SectionID]sectionTitle{
	SectionYearlyOpen:     {"Yıllara Göre Açık Zafiyet Sayısı", "Open Vulnerabilities by Year"},
	SectionPriorityDist:   {"Priority Dağılımı", "Priority Distribution"},
	SectionLineManager:    {"Line Manager Bazında Zafiyet Dağılımı", "Vulnerabilities by Line Manager"},
	SectionDepartment:     {"Departman Bazında Zafiyet Dağılımı", "Vulnerabilities by Department"},
	SectionTool:           {"Tool/Kaynak Dağılımı", "Tool/Source Distribution"},
	SectionSLA:            {"SLA Durumu", "SLA Status"},
	SectionTrend:          {"Zafiyet Trend Analizi", "Vulnerability Trend Analysis"},
	SectionTop10:          {"En Çok Görülen Zafiyetler", "Most Common Vulnerabilities"},
	SectionIPDensity:      {"IP Bazlı Zafiyet Yoğunluğu", "Vulnerability Density by IP"},
	SectionResolutionTime: {"Zafiyet Çözüm Süreleri", "Vulnerability Resolution Times"},
	SectionSLABreach:      {"SLA Aşım Analizi", "SLA Breach Analysis"},
}

// Title returns the localized heading for a section.
func Title(id SectionID, lang Language) string {
	t, ok := sectionTitles[id]
	if !ok {
		return string(id)
	}
	return lang.Label(t.TR, t.EN)
}

// IsSection reports whether id names a known section.
func IsSection(id SectionID) bool {
	_, ok := sectionTitles[id]
	return ok
}
