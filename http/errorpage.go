package http

import (
	"fmt"
	"html"
	"io"
	"net/http"
)

const defaultNotFoundHTML = `<html>
<head><title>404 Not Found</title></head>
<body>
<center><h1>404 Not Found</h1></center>
<hr><center>roofserve</center>
</body>
</html>`

const indexHTML = `
<h1>Roofing Materials Server</h1>
<p>Server is running successfully on port %d!</p>
<ul>
  <li>Access images at: <a href="%[2]s/Images">%[2]s/Images/{filename}</a></li>
  <li>Access companies data at: <a href="%[2]s/all-companies.json">%[2]s/all-companies.json</a></li>
</ul>
`

func writeDefaultNotFound(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	_, _ = io.WriteString(w, defaultNotFoundHTML)
}

func writeIndex(w http.ResponseWriter, prefix string, port int) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, indexHTML, port, html.EscapeString(prefix))
}
