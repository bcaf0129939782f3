package sheets

import "fmt"

// Prompt is one row of a prompt-library tab. Columns A through F:
// Name, Content, Created By, Created At, Last Modified By, Last Modified At.
type Prompt struct {
	Name       string `json:"name"`
	Content    string `json:"content"`
	CreatedBy  string `json:"created_by"`
	CreatedAt  string `json:"created_at"`
	ModifiedBy string `json:"last_modified_by"`
	ModifiedAt string `json:"last_modified_at"`
}

// PromptRange returns the A1 range covering the prompt columns of a tab.
func PromptRange(tab string) string {
	return fmt.Sprintf("%s!A:F", tab)
}

// PromptRow builds the sheet row for a new prompt. Creation and
// modification columns start out identical.
func PromptRow(name, content, author, timestamp string) []any {
	return []any{name, content, author, timestamp, author, timestamp}
}

// ParsePrompts converts raw range values into Prompt records, skipping the
// header row and padding rows shorter than six columns.
func ParsePrompts(rows [][]any) []Prompt {
	if len(rows) <= 1 {
		return []Prompt{}
	}

	prompts := make([]Prompt, 0, len(rows)-1)
	for _, row := range rows[1:] {
		prompts = append(prompts, Prompt{
			Name:       cell(row, 0),
			Content:    cell(row, 1),
			CreatedBy:  cell(row, 2),
			CreatedAt:  cell(row, 3),
			ModifiedBy: cell(row, 4),
			ModifiedAt: cell(row, 5),
		})
	}
	return prompts
}

// cell returns the string value at index, or "" past the row's end.
func cell(row []any, index int) string {
	if index >= len(row) {
		return ""
	}
	if s, ok := row[index].(string); ok {
		return s
	}
	return fmt.Sprint(row[index])
}
