package schema

const SearchEventSchemaTextV1 = `{
	"type": "record",
	"namespace": "search",
	"name": "search_event",
	"fields" : [
		{"name": "query", "type": "string"},
		{"name": "strategy", "type": "string"},
		{"name": "results", "type": "int"},
		{"name": "took_ms", "type": "long"}
	]
}`

type SearchEventV1 struct {
	Query    string `avro:"query"`
	Strategy string `avro:"strategy"`
	Results  int    `avro:"results"`
	TookMs   int64  `avro:"took_ms"`
}
