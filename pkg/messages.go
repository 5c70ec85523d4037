package pkg

// Client facing messages shared by all handlers.
const (
	MsgInternalError = "Error interno del servidor"
	MsgInvalidID     = "ID inválido"
	MsgInvalidJSON   = "Cuerpo de la petición inválido"
	MsgInvalidConfig = "Configuración inválida"
	MsgUnauthorized  = "No autorizado"
	MsgNotFound      = "Recurso no encontrado"
)
