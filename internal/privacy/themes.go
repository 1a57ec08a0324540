package privacy

import (
	"regexp"
	"strings"
)

// themeRule maps a keyword pattern to a broad, non-identifying theme.
type themeRule struct {
	pattern *regexp.Regexp
	theme   string
}

// Rules are evaluated top to bottom; the first match wins. Strengths and
// goals get independent tables because identical wording should generalise
// differently depending on which list it came from.
var strengthThemes = []themeRule{
	{regexp.MustCompile(`(?i)memory|recall|remember`), "Strong memory skills"},
	{regexp.MustCompile(`(?i)audit(ory)?|listen|hear`), "Strong auditory processing"},
	{regexp.MustCompile(`(?i)visual|see|observ|notic`), "Visual awareness"},
	{regexp.MustCompile(`(?i)creative|art|music|draw|paint|design`), "Creative expression"},
	{regexp.MustCompile(`(?i)social|friend|peer|communicat|collaborat`), "Social engagement"},
	{regexp.MustCompile(`(?i)technolog|comput|digital|software|device`), "Technology proficiency"},
	{regexp.MustCompile(`(?i)read|liter|writ|story|book|narrat`), "Literacy strengths"},
	{regexp.MustCompile(`(?i)math|number|calculat|logic|quantit`), "Mathematical thinking"},
	{regexp.MustCompile(`(?i)organiz|plan|schedul|manag`), "Organisational skills"},
	{regexp.MustCompile(`(?i)persist|determin|resilient|motivat|driven`), "Persistence and motivation"},
	{regexp.MustCompile(`(?i)advocate|self-advocate|voice|speak up`), "Self-advocacy"},
	{regexp.MustCompile(`(?i)problem.?solv|analyt|critical`), "Analytical thinking"},
	{regexp.MustCompile(`(?i)curio|question|explor|investigat`), "Intellectual curiosity"},
	{regexp.MustCompile(`(?i)empathy|caring|kind|compassion`), "Empathy and compassion"},
	{regexp.MustCompile(`(?i)leader|mentor|initiative`), "Leadership"},
	{regexp.MustCompile(`(?i)adapt|flexible|adjust`), "Adaptability"},
	{regexp.MustCompile(`(?i)focus|concentrat|attent`), "Focused attention"},
	{regexp.MustCompile(`(?i)kinesthet|movement|physical|motor|sport|athlet`), "Physical/kinaesthetic strengths"},
	{regexp.MustCompile(`(?i)humor|funny|joke`), "Sense of humour"},
	{regexp.MustCompile(`(?i)science|biology|chemistry|physics|lab`), "Science aptitude"},
}

var goalThemes = []themeRule{
	{regexp.MustCompile(`(?i)post.?secondary|college|university|higher.?ed`), "Post-secondary education"},
	{regexp.MustCompile(`(?i)career|job|employ|work|profession`), "Career aspirations"},
	{regexp.MustCompile(`(?i)independen|self.?suffic|autonomy`), "Independence"},
	{regexp.MustCompile(`(?i)communit|belong|inclus|social`), "Community participation"},
	{regexp.MustCompile(`(?i)technolog|comput|STEM|engineer`), "Technology/STEM interests"},
	{regexp.MustCompile(`(?i)art|music|creativ|perform|theater|theatre`), "Creative pursuits"},
	{regexp.MustCompile(`(?i)advocate|rights|justice|activis`), "Advocacy and rights"},
	{regexp.MustCompile(`(?i)travel|explore|abroad`), "Exploration and travel"},
	{regexp.MustCompile(`(?i)health|wellbeing|fitness`), "Health and wellbeing"},
	{regexp.MustCompile(`(?i)mentor|teach|help others`), "Mentoring others"},
}

const fallbackWords = 5

// generalise returns the first matching broad theme for text. With no match
// it falls back to the first few words plus an ellipsis, which keeps the safe
// view non-empty while stripping most of the original phrasing.
func generalise(text string, rules []themeRule) string {
	for _, r := range rules {
		if r.pattern.MatchString(text) {
			return r.theme
		}
	}
	words := strings.Fields(text)
	if len(words) > fallbackWords {
		return strings.Join(words[:fallbackWords], " ") + "..."
	}
	return strings.Join(words, " ")
}

// GeneraliseStrength maps a strength entry to a broad theme.
func GeneraliseStrength(text string) string {
	return generalise(text, strengthThemes)
}

// GeneraliseGoal maps a goal/hope entry to a broad theme.
func GeneraliseGoal(text string) string {
	return generalise(text, goalThemes)
}
