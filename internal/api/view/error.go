package view

import (
	"strconv"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

func ErrorPage(ch Chrome, status int, message string) Node {
	return Page("Error", ch,
		Section(Class("error-page"),
			H1(Text(strconv.Itoa(status))),
			P(Text(message)),
			A(Href("/"), Class("btn"), Text("Back to home")),
		),
	)
}
