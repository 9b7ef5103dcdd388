// Package generator is the core scaffolding pipeline: template rendering,
// anchor-based file injection, and all-or-nothing materialization.
//
// An invocation flows through four stages:
//
//  1. BuildContext assembles the read-only RenderContext (identifier
//     variants, fields, options, one fixed timestamp).
//  2. BuildOperations renders every TemplateJob from the catalog into a
//     CreateFileOp or InjectFileOp.
//  3. Execute validates the entire operation list against a simulated
//     filesystem snapshot: duplicate creates, injections ahead of their
//     create, missing anchors and existing files all abort here, before
//     any write.
//  4. Operations then run sequentially; each write is atomic per file.
//
// Each job moves Pending → Rendered → Planned (injection only) →
// Applied | Skipped | Failed, and the terminal state lands in the
// invocation Report. Re-running an invocation against the same tree is a
// no-op: injections whose text is already at the anchor report
// Skipped("already present").
package generator
