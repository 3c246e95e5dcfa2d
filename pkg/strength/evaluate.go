package strength

import (
	"regexp"
	"unicode/utf8"
)

const (
	goodLengthMin     = 12
	moderateLengthMin = 8
	repeatRunMin      = 3

	msgGoodLength     = "Password is a good length (12+ characters)."
	msgModerateLength = "Password is of moderate length (8-11 characters). Consider making it longer."
	msgShortLength    = "Password is too short. Aim for at least 8 characters, preferably 12+."
	msgHasUpper       = "Contains uppercase letters."
	msgNoUpper        = "Consider adding uppercase letters."
	msgHasLower       = "Contains lowercase letters."
	msgNoLower        = "Consider adding lowercase letters."
	msgHasDigit       = "Contains numbers."
	msgNoDigit        = "Consider adding numbers."
	msgHasSpecial     = "Contains special characters."
	msgNoSpecial      = "Consider adding special characters (e.g., !@#$%^&*)."
	msgRepeated       = "Warning: Contains 3 or more consecutive identical characters (e.g., 'aaa')."
)

// classRule awards one point when its pattern matches anywhere in the password.
type classRule struct {
	pattern *regexp.Regexp
	hit     string
	miss    string
}

var classRules = []classRule{
	{regexp.MustCompile(`[A-Z]`), msgHasUpper, msgNoUpper},
	{regexp.MustCompile(`[a-z]`), msgHasLower, msgNoLower},
	{regexp.MustCompile(`[0-9]`), msgHasDigit, msgNoDigit},
	{regexp.MustCompile("[!@#$%^&*()_+={}\\[\\]:;<>,.?/~`]"), msgHasSpecial, msgNoSpecial},
}

// Report is the outcome of a single evaluation.
type Report struct {
	Score    int      `json:"score" yaml:"score"`
	Strength Strength `json:"strength" yaml:"strength"`
	Feedback []string `json:"feedback" yaml:"feedback"`
}

// Evaluate scores the password. It accepts any string, including an empty one.
// Feedback lines follow rule order: length, uppercase, lowercase, digits,
// special characters and finally the optional repetition warning.
func Evaluate(password string) Report {
	score := 0
	feedback := make([]string, 0, len(classRules)+2)

	switch n := utf8.RuneCountInString(password); {
	case n >= goodLengthMin:
		score += 2
		feedback = append(feedback, msgGoodLength)
	case n >= moderateLengthMin:
		score++
		feedback = append(feedback, msgModerateLength)
	default:
		feedback = append(feedback, msgShortLength)
	}

	for _, r := range classRules {
		if r.pattern.MatchString(password) {
			score++
			feedback = append(feedback, r.hit)
			continue
		}
		feedback = append(feedback, r.miss)
	}

	if hasRepeatedRun(password, repeatRunMin) {
		score--
		feedback = append(feedback, msgRepeated)
	}

	return Report{
		Score:    score,
		Strength: FromScore(score),
		Feedback: feedback,
	}
}

// hasRepeatedRun reports whether s holds n or more identical consecutive
// runes. Newlines never count toward a run.
func hasRepeatedRun(s string, n int) bool {
	var prev rune
	run := 0
	for _, c := range s {
		switch {
		case c == '\n':
			run = 0
		case run > 0 && c == prev:
			run++
		default:
			run = 1
		}
		if run >= n {
			return true
		}
		prev = c
	}
	return false
}
