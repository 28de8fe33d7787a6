package typescript

import (
	"github.com/syssam/scaffold/compiler/gen"
	"github.com/syssam/scaffold/compiler/gen/segment"
)

// Default ports of the generated servers.
const (
	DefaultPort       = 5000
	DefaultSocketPort = 5001
)

// Messages shared by the generated runtime.
var messages = []segment.Field{
	{Key: "MESSAGE_USED_ABSTRACT_DAO_ERROR", Value: "Abstract data access object used, use a concrete implementation."},
	{Key: "MESSAGE_USED_ABSTRACT_DATABASE_ERROR", Value: "Abstract database used, use a concrete implementation."},
	{Key: "MESSAGE_DATABASE_URL_MISSING_ERROR", Value: "Database URL is missing."},
	{Key: "MESSAGE_DATABASE_CONNECTION_SUCCESS", Value: "Connected to database."},
	{Key: "MESSAGE_HANDLER_NOT_IMPLEMENTED", Value: "Handler not implemented."},
	{Key: "MESSAGE_HANDLER_PARAMETER_MISSING", Value: "Required parameter missing."},
	{Key: "MESSAGE_HANDLER_ITEM_NOT_FOUND", Value: "Item not found."},
	{Key: "MESSAGE_ROUTE_NOT_FOUND", Value: "Route not found."},
	{Key: "MESSAGE_AUTHENTICATION_FAILED", Value: "Invalid credentials."},
}

func (b *builder) config() *gen.Node {
	n := &gen.Node{Name: "config", Dir: "config"}
	n.AddFile("index.ts", b.configIndex)
	n.AddFile("messages.ts", b.configMessages)
	return n
}

func (b *builder) configIndex(w *gen.Emitter) error {
	types := make(segment.Object, len(b.cfg.Storages))
	for i, s := range b.cfg.Storages {
		types[i] = segment.Field{Key: s.Ident, Value: s.Name}
	}
	consts := []segment.Const{
		{Name: "DATABASE_TYPES", Doc: "Database type enum.", Value: types, Export: true},
		{Name: "SERVER_NAME", Doc: "Name of the server.", Value: b.cfg.Name, Export: true},
	}
	if b.cfg.Description != "" {
		consts = append(consts, segment.Const{Name: "SERVER_DESCRIPTION", Doc: "Description of the server.", Value: b.cfg.Description, Export: true})
	}
	consts = append(consts, segment.Const{Name: "DEFAULT_PORT", Doc: "Port of the server when the environment sets none.", Value: DefaultPort, Export: true})
	if b.cfg.HasRuntime(gen.RuntimeWebSocket) {
		consts = append(consts, segment.Const{Name: "DEFAULT_SOCKET_PORT", Doc: "Port of the socket server when the environment sets none.", Value: DefaultSocketPort, Export: true})
	}
	if a := b.auth(); a != nil {
		if a.MaintainSessions {
			name := a.CookieName
			if name == "" {
				name = gen.FileName(b.cfg.Name)
			}
			consts = append(consts, segment.Const{Name: "COOKIE_NAME", Doc: "Session token name.", Value: name, Export: true})
		}
		if a.UsesPassword {
			consts = append(consts, segment.Const{Name: "SALT_WORK_FACTOR", Doc: "Encryption value.", Value: 10, Export: true})
		}
	}
	for i, c := range consts {
		if i > 0 {
			w.Gap()
		}
		c.Render(w, b.ctx)
	}
	return nil
}

func (b *builder) configMessages(w *gen.Emitter) error {
	for i, m := range messages {
		if i > 0 {
			w.Gap()
		}
		segment.Const{Name: m.Key, Value: m.Value, Export: true}.Render(w, b.ctx)
	}
	return nil
}
