package web

const pageTemplate = `<!DOCTYPE html>
<html>
<head>
  <title>jobwatch</title>
  <style>
    body { font-family: sans-serif; max-width: 48rem; margin: 2rem auto; }
    form { margin-bottom: 2rem; }
    label { display: block; margin-top: 0.5rem; }
    .error { color: #b00020; }
    .message { color: #00652e; }
    pre { background: #f4f4f4; padding: 1rem; overflow-x: auto; }
  </style>
</head>
<body>
  <h1>jobwatch</h1>
  {{if .Error}}<p class="error">{{.Error}}</p>{{end}}
  {{if .Message}}<p class="message">{{.Message}}</p>{{end}}

  <h2>Add User</h2>
  <form method="POST" action="/users">
    <label>Name <input name="name"></label>
    <label>Email <input name="email" type="email"></label>
    <label>Location (City, Country) <input name="location"></label>
    <label>Preferred Job Roles (comma-separated) <input name="roles"></label>
    <label>Skills (comma-separated) <input name="skills"></label>
    <label>Minimum Salary <input name="min_salary" type="number" min="0"></label>
    <button type="submit">Add User</button>
  </form>

  <h2>Run Job Matching</h2>
  <form method="POST" action="/run">
    <button type="submit">Run Job Matching</button>
  </form>

  <h2>Search Available Jobs</h2>
  <form method="GET" action="/search">
    <label>Job Title <input name="query" value="{{.Query}}"></label>
    <label>Location <input name="location" value="{{.Location}}"></label>
    <label>Country
      <select name="country">
        {{$selected := .Country}}
        {{range .Countries}}<option value="{{.}}"{{if eq . $selected}} selected{{end}}>{{.}}</option>{{end}}
      </select>
    </label>
    <button type="submit">Search Jobs</button>
  </form>

  {{if .Results}}<pre>{{.Results}}</pre>{{end}}
</body>
</html>
`
