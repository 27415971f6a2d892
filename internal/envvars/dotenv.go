package envvars

import (
	"github.com/joho/godotenv"
)

// Resolve returns the concrete values of the environment. Passthrough
// variables take their value from lookup and are left out when lookup
// does not know them. The returned slice names the omitted variables.
func (e Environment) Resolve(lookup func(string) (string, bool)) (map[string]string, []string) {
	values := make(map[string]string, len(e.vars))
	var missing []string
	for _, v := range e.vars {
		if v.Value != nil {
			values[v.Name] = *v.Value
			continue
		}
		if val, ok := lookup(v.Name); ok {
			values[v.Name] = val
			continue
		}
		missing = append(missing, v.Name)
	}
	return values, missing
}

// DotEnv renders the resolved environment as a .env document, one
// KEY="value" line per variable sorted by name.
func (e Environment) DotEnv(lookup func(string) (string, bool)) (string, []string, error) {
	values, missing := e.Resolve(lookup)
	out, err := godotenv.Marshal(values)
	if err != nil {
		return "", nil, err
	}
	if out != "" {
		out += "\n"
	}
	return out, missing, nil
}
