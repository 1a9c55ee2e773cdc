package notification

import (
	"fmt"
	"html"
	"strings"

	"github.com/Ordones18/Ponte-Once-Store/internal/domain"
)

// Mailer composes the storefront's transactional emails. Texts match the
// messages the store has always sent.
type Mailer struct {
	publicBaseURL string
}

func NewMailer(publicBaseURL string) *Mailer {
	return &Mailer{publicBaseURL: strings.TrimRight(publicBaseURL, "/")}
}

func (m *Mailer) Welcome(username, email string) *domain.EmailMessage {
	body := fmt.Sprintf(
		"<p>Hola %s,</p><p>Gracias por registrarte en nuestra tienda. ¡Esperamos que encuentres el hardware de tus sueños!</p><p>Saludos,<br>El equipo de PONTE ONCE.</p>",
		html.EscapeString(username),
	)

	return &domain.EmailMessage{
		To:      email,
		Subject: "Bienvenido a PONTE ONCE Store!",
		HTML:    body,
		Kind:    "welcome",
	}
}

func (m *Mailer) PurchaseConfirmation(purchase *domain.Purchase, product *domain.Product) *domain.EmailMessage {
	phone := purchase.Phone
	if phone == "" {
		phone = "N/A"
	}

	body := fmt.Sprintf(
		"<p>Hola %s,</p><p>Gracias por su compra de: %s.<br>Total: $%.2f<br>Celular de contacto: %s</p><p>En unos momentos nos comunicaremos con usted a este numero para coordinar el envio.</p><p>Atentamente,<br>El equipo de PONTE ONCE.</p>",
		html.EscapeString(purchase.BuyerName),
		html.EscapeString(product.Name),
		purchase.TotalPrice,
		html.EscapeString(phone),
	)

	return &domain.EmailMessage{
		To:      purchase.Email,
		Subject: "Confirmacion de Compra - PONTE ONCE",
		HTML:    body,
		Kind:    "purchase",
	}
}

func (m *Mailer) PasswordReset(username, email, token string) *domain.EmailMessage {
	link := fmt.Sprintf("%s/reset_password/%s", m.publicBaseURL, token)
	body := fmt.Sprintf(
		"<p>Hola %s,</p><p>Haz clic en el siguiente enlace para restablecer tu contraseña:<br><a href=\"%s\">%s</a></p><p>Si no fuiste tú, ignora este mensaje.</p>",
		html.EscapeString(username), link, link,
	)

	return &domain.EmailMessage{
		To:      email,
		Subject: "Recuperacion de Contrasena",
		HTML:    body,
		Kind:    "reset",
	}
}
