package service

import "fmt"

// User-facing messages shown by the screens.
const (
	MsgLoginFailed        = "Credenciales incorrectas. Por favor, inténtelo de nuevo."
	MsgAuthUnreachable    = "Error de conexión con el servidor. Por favor, inténtelo más tarde."
	MsgSignupFailed       = "Error al registrar. Por favor, inténtelo de nuevo."
	MsgSignupSuccess      = "Registro exitoso. Redirigiendo al inicio de sesión..."
	MsgPasswordMismatch   = "Las contraseñas no coinciden"
	MsgPasswordTooShort   = "La contraseña debe tener al menos 6 caracteres"
	MsgInvalidEmail       = "El correo electrónico no es válido"
	MsgRequiredFields     = "Todos los campos obligatorios deben ser completados"
	MsgUnreachable        = "Error de conexión al servidor"
	MsgImagesLoadFailed   = "Error al cargar las imágenes"
	MsgInvalidImageFormat = "Formato de imagen no válido. Use PNG, JPG, GIF o BMP"
	MsgImageTooLarge      = "El archivo excede el tamaño máximo de 10MB"
	MsgNoImageSelected    = "Por favor selecciona una imagen"
	MsgUploadSuccess      = "Imagen subida correctamente"
	MsgUploadFailed       = "Error al subir la imagen"
	MsgTransformSuccess   = "Transformación aplicada correctamente"
	MsgTransformFailed    = "Error al transformar la imagen"
	MsgInvalidTransform   = "Tipo de transformación no válido"
	MsgDownloadFailed     = "Error al descargar la imagen"
	MsgDownloadUnreach    = "Error de conexión al descargar la imagen"
	MsgDeleteSuccess      = "Imagen eliminada correctamente"
	MsgDeleteFailed       = "Error al eliminar la imagen"
	MsgUsersLoadFailed    = "Error al cargar los usuarios"
	MsgUserSaveFailed     = "Error al guardar el usuario"
	MsgUserSaved          = "Usuario guardado correctamente"
	MsgUserDeleteFailed   = "Error al eliminar el usuario"
	MsgUserDeleted        = "Usuario eliminado correctamente"
	MsgUserStatusFailed   = "Error al actualizar el estado del usuario"
	MsgUserNotFound       = "El usuario no se encontró"
	MsgInvalidRole        = "El rol seleccionado no es válido"
)

// MsgArtifactNotFound is the 404 message of a download.
func MsgArtifactNotFound(label string) string {
	return fmt.Sprintf("La imagen %s no se encontró", label)
}

// MsgArtifactMissing is shown when the requested variant does not exist yet.
func MsgArtifactMissing(label string) string {
	return fmt.Sprintf("No hay versión %s disponible", label)
}
