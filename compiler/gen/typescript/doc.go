// Package typescript generates a TypeScript backend from a gen.Config.
//
// The backend is split into layers, each a generator node writing one
// directory of the output root:
//
//	config/     constants and messages
//	database/   abstract database, selection, one directory per backend
//	endpoints/  express, vercel and websocket surfaces
//	errors/     error classes of the runtime
//	handlers/   one directory of request handlers per table
//	helpers/    environment and monitor
//	types/      record and query types
//
// Project files (package.json, tsconfig.json, ...) are written to the
// output root itself.
package typescript
