package telegram

import (
	"strconv"
	"strings"

	"github.com/aliskhannn/quran-fahras-bot/internal/domain/entities"
)

// Callback action constants.
const (
	actionChapters = "ch"
	actionQuiz     = "qz"
)

// Chapters sub-actions.
const (
	chaptersPage   = "p"
	chaptersToggle = "t"
	chaptersAll    = "a"
	chaptersNone   = "n"
	chaptersApply  = "s"
)

// Quiz sub-actions.
const (
	quizSetup  = "c"  // edit the setup draft
	quizStart  = "go" // start with the encoded draft
	quizAnswer = "ans"
	quizAgain  = "again"
	quizReset  = "rs"
)

const unsetCode = "-"

var fieldCodes = map[entities.Field]string{
	entities.FieldChapterName:   "n",
	entities.FieldChapterNumber: "i",
	entities.FieldVerseCount:    "v",
}

var modeCodes = map[entities.Mode]string{
	entities.ModeTyped:    "t",
	entities.ModeSelected: "s",
}

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// param returns the i-th parameter or an empty string.
func (cd callbackData) param(i int) string {
	if i < 0 || i >= len(cd.Params) {
		return ""
	}
	return cd.Params[i]
}

// intParam parses the i-th parameter as an integer.
func (cd callbackData) intParam(i int) (int, bool) {
	n, err := strconv.Atoi(cd.param(i))
	if err != nil {
		return 0, false
	}
	return n, true
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

func buildChaptersCallback(sub string, params ...int) string {
	cd := callbackData{Action: actionChapters, Params: []string{sub}}
	for _, p := range params {
		cd.Params = append(cd.Params, strconv.Itoa(p))
	}
	return cd.encode()
}

// encodeDraft encodes a (possibly incomplete) session config as three params.
func encodeDraft(cfg entities.SessionConfig) []string {
	return []string{
		codeOr(fieldCodes[cfg.QuestionField]),
		codeOr(fieldCodes[cfg.AnswerField]),
		codeOr(modeCodes[cfg.Mode]),
	}
}

// decodeDraft is the inverse of encodeDraft. Unknown codes decode as unset.
func decodeDraft(params []string) entities.SessionConfig {
	var cfg entities.SessionConfig
	if len(params) > 0 {
		cfg.QuestionField = fieldByCode(params[0])
	}
	if len(params) > 1 {
		cfg.AnswerField = fieldByCode(params[1])
	}
	if len(params) > 2 {
		cfg.Mode = modeByCode(params[2])
	}
	return cfg
}

func buildQuizSetupCallback(cfg entities.SessionConfig) string {
	return callbackData{
		Action: actionQuiz,
		Params: append([]string{quizSetup}, encodeDraft(cfg)...),
	}.encode()
}

func buildQuizStartCallback(cfg entities.SessionConfig) string {
	return callbackData{
		Action: actionQuiz,
		Params: append([]string{quizStart}, encodeDraft(cfg)...),
	}.encode()
}

func buildQuizAnswerCallback(chapterID, index int) string {
	return callbackData{
		Action: actionQuiz,
		Params: []string{quizAnswer, strconv.Itoa(chapterID), strconv.Itoa(index)},
	}.encode()
}

func buildQuizCallback(sub string) string {
	return callbackData{Action: actionQuiz, Params: []string{sub}}.encode()
}

func codeOr(code string) string {
	if code == "" {
		return unsetCode
	}
	return code
}

func fieldByCode(code string) entities.Field {
	for f, c := range fieldCodes {
		if c == code {
			return f
		}
	}
	return entities.FieldUnset
}

func modeByCode(code string) entities.Mode {
	for m, c := range modeCodes {
		if c == code {
			return m
		}
	}
	return entities.ModeUnset
}
