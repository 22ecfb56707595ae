package generator

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"story-narrator/internal/models"

	"github.com/Masterminds/sprig/v3"
)

const unknownTrait = "unknown"

const chatPromptText = `You are an expert children's story writer. Write a {{ .Style }} story for kids aged 3-8.

Main Character: {{ .Main.Name }},
Favorite Color: {{ .Main.FavoriteColor }},
Animal Friend: {{ .Main.AnimalFriend }},
Superpower: {{ .Main.Superpower }},
Hobby: {{ .Main.Hobby }},
Personality: {{ .Main.Personality }}.

Other Characters: {{ .SupportingNames | join ", " | default "none" }}.

Setting: {{ .Scenario.Name }} - {{ .Scenario.Description }}

Make it engaging, fun, and suitable for young children.
Use simple words and short sentences.`

const completionPromptText = `Write a {{ .Style }} story for kids aged 3-8 featuring {{ .Main.Name }}. ` +
	`{{ .Main.Name }} loves {{ .Main.FavoriteColor }}, has an animal friend {{ .Main.AnimalFriend }}, ` +
	`and has the superpower of {{ .Main.Superpower }}. Their favorite hobby is {{ .Main.Hobby }}. ` +
	`They are {{ .Main.Personality }}.` +
	`{{ if .Supporting }} They are joined by ` +
	`{{ range $i, $c := .Supporting }}{{ if $i }}, {{ end }}{{ $c.Name }} (a {{ $c.Personality }} friend with {{ $c.Superpower }}){{ end }}.` +
	`{{ end }} The story takes place in {{ .Scenario.Name }}, described as {{ .Scenario.Description }}. ` +
	`Make it in {{ .Language | trim | default "English" | title }} language, fun, educative, engaging, ` +
	`child-friendly, with a happy ending and a teaching moral!`

var (
	chatPromptTemplate       = template.Must(templateBase("chat", chatPromptText))
	completionPromptTemplate = template.Must(templateBase("completion", completionPromptText))
)

type characterView struct {
	Name          string
	FavoriteColor string
	AnimalFriend  string
	Superpower    string
	Hobby         string
	Personality   string
}

type promptData struct {
	Style           string
	Main            characterView
	Supporting      []characterView
	SupportingNames []string
	Scenario        models.Scenario
	Language        string
}

func templateBase(name, text string) (*template.Template, error) {
	return template.New(name).Funcs(sprig.FuncMap()).Parse(text)
}

func templateExecute(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render %s prompt: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}

func newPromptData(characters []models.Character, scenario models.Scenario, style, language string) promptData {
	data := promptData{
		Style:    style,
		Main:     viewOf(characters[0]),
		Scenario: scenario,
		Language: language,
	}
	for _, c := range characters[1:] {
		data.Supporting = append(data.Supporting, viewOf(c))
		data.SupportingNames = append(data.SupportingNames, c.Name)
	}
	return data
}

func viewOf(c models.Character) characterView {
	return characterView{
		Name:          c.Name,
		FavoriteColor: traitOrUnknown(c.FavoriteColor),
		AnimalFriend:  traitOrUnknown(c.AnimalFriend),
		Superpower:    traitOrUnknown(c.Superpower),
		Hobby:         traitOrUnknown(c.Hobby),
		Personality:   traitOrUnknown(c.Personality),
	}
}

func traitOrUnknown(v *string) string {
	if s := strings.TrimSpace(models.Trait(v)); s != "" {
		return s
	}
	return unknownTrait
}

// ChatPrompt renders the single user message sent to chat backends.
func ChatPrompt(characters []models.Character, scenario models.Scenario, style string) (string, error) {
	if len(characters) == 0 {
		return "", errNoCharacters
	}
	return templateExecute(chatPromptTemplate, newPromptData(characters, scenario, style, ""))
}

// CompletionPrompt renders the prompt sent to completion backends.
func CompletionPrompt(characters []models.Character, scenario models.Scenario, style, language string) (string, error) {
	if len(characters) == 0 {
		return "", errNoCharacters
	}
	return templateExecute(completionPromptTemplate, newPromptData(characters, scenario, style, language))
}
