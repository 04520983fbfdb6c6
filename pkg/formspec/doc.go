// Package formspec loads declarative credential-style form definitions from
// YAML or JSON files and builds bound, validated forms from them.
//
// A definition file looks like:
//
//	openapi: api.yaml          # optional, enables per-field `property`
//	forms:
//	  signup:
//	    title: Create account
//	    component: Credentials
//	    fields:
//	      - name: email
//	        type: email
//	        rules: {required: true, format: email}
//	        messages: {format: Invalid email}
//	      - name: password
//	        type: password
//	        property: password
//	      - name: confirm
//	        type: password
//	        matches: password
//	        messages: {matches: Passwords do not match}
//
// Rules compile to OpenAPI schemas validated through kin-openapi; `matches`
// compiles to a schema that is rebuilt whenever the referenced field changes.
package formspec
