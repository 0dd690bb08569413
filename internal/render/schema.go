package render

import (
	"reflect"

	"github.com/KaramelBytes/csvscope/internal/profile"
	"github.com/KaramelBytes/csvscope/internal/utils"
	"github.com/invopop/jsonschema"
)

// Schema returns the JSON Schema describing Envelope as written by the json
// format.
func Schema() ([]byte, error) {
	r := &jsonschema.Reflector{
		DoNotReference: true,
		Mapper: func(t reflect.Type) *jsonschema.Schema {
			if t != reflect.TypeOf(profile.SemanticType(0)) {
				return nil
			}
			enum := make([]any, 0, int(profile.Null)+1)
			for st := profile.Integer; st <= profile.Null; st++ {
				enum = append(enum, st.String())
			}
			return &jsonschema.Schema{Type: "string", Enum: enum}
		},
	}
	s := r.Reflect(&Envelope{})
	s.Title = "csvscope analysis"
	return utils.PrettyJSON(s)
}
