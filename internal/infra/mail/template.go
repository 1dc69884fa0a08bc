package mail

import (
	"bytes"
	"embed"
	htmltemplate "html/template"
	texttemplate "text/template"

	"github.com/danguerrag/go-leads-api/internal/entity"
)

//go:embed templates/new_lead.html templates/new_lead.txt
var templateFS embed.FS

var (
	newLeadHTML = htmltemplate.Must(htmltemplate.ParseFS(templateFS, "templates/new_lead.html"))
	newLeadText = texttemplate.Must(texttemplate.ParseFS(templateFS, "templates/new_lead.txt"))
)

// dateLayout renders the stored timestamp the way the operators read it:
// day/month/year, 24-hour clock.
const dateLayout = "02/01/2006, 15:04:05"

type newLeadData struct {
	FullName string
	Email    string
	Phone    string
	Message  string
	Date     string
}

func renderNewLead(lead *entity.Lead) (html string, text string, err error) {
	data := newLeadData{
		FullName: lead.FullName,
		Email:    lead.Email,
		Phone:    lead.Phone,
		Message:  lead.Message,
		Date:     lead.Date.Format(dateLayout),
	}

	var htmlBuf bytes.Buffer
	if err := newLeadHTML.Execute(&htmlBuf, data); err != nil {
		return "", "", err
	}

	var textBuf bytes.Buffer
	if err := newLeadText.Execute(&textBuf, data); err != nil {
		return "", "", err
	}

	return htmlBuf.String(), textBuf.String(), nil
}
