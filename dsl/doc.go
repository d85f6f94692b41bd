// Package dsl describes JSON document shapes as explicit schema descriptors and
// walks decoded values against them.
//
// Overview
//   - Primitives: String() (NonEmpty, Prefix) and Number()/Int() (Min).
//   - Array(elem): arrays of any descriptor.
//   - Object(): builder; chain Field(name, s).Required() and finish with Build/MustBuild.
//   - Check(ctx, path, value, optional) collects every violation as timelint.Issues,
//     with JSON Pointer paths and localized messages.
//   - JSONSchema()/JSONSchemaStrict() export the same rules as JSON Schema.
//
// Example
//
//	person := g.Object().
//	    Field("name", g.String()).Required().
//	    Field("link", g.String()).
//	    MustBuild()
//	iss := person.Check(&g.Ctx{}, timelint.Root(), map[string]any{"link": 1}, false)
//	// iss[0]: /name required, iss[1]: /link invalid_type
//
// Error model
//   - A value of the wrong JSON type yields exactly one invalid_type issue and
//     its children are not visited.
//   - Missing required fields are reported at the pointer of the missing field.
//   - Arrays of primitives collapse element type mismatches into one issue at
//     the array; arrays of objects report each element.
//   - Unknown fields are reported only when Ctx.Unknown is UnknownStrict, in
//     key-sorted order after the declared fields.
package dsl
