package templates

import (
	"fmt"
	"html"
	"strings"
)

// RenderPasswordReset generates the HTML for the password reset email. The
// link is valid for one hour.
func RenderPasswordReset(resetLink string) string {
	return fmt.Sprintf(`<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.0 Strict//EN" "http://www.w3.org/TR/xhtml1/DTD/xhtml1-strict.dtd">
<html xmlns="http://www.w3.org/1999/xhtml">
<head>
  <meta http-equiv="Content-Type" content="text/html; charset=utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1, minimum-scale=1, maximum-scale=1">
  <title>Réinitialisation du mot de passe - Gestion Parc Auto</title>
  <style type="text/css">
    body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; margin: 0; padding: 0; background-color: #f3f4f6; }
    .container { max-width: 600px; margin: 0 auto; background-color: #ffffff; }
    .header { background: linear-gradient(135deg, #1d4ed8 0%%, #1e40af 100%%); padding: 40px 30px; text-align: center; }
    .header h1 { color: #fff; margin: 0; font-size: 24px; font-weight: 700; }
    .content { padding: 40px 30px; color: #374151; }
    .cta-button { display: inline-block; background: linear-gradient(135deg, #1d4ed8 0%%, #1e40af 100%%); color: #fff; padding: 14px 28px; border-radius: 8px; text-decoration: none; font-weight: 700; margin-top: 20px; }
    .footer { padding: 30px; text-align: center; color: #6b7280; font-size: 12px; border-top: 1px solid #e5e7eb; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>Réinitialisation du mot de passe</h1>
    </div>
    <div class="content">
      <p>Bonjour,</p>
      <p>Vous avez demandé la réinitialisation de votre mot de passe <strong>Gestion Parc Auto</strong>. Cliquez sur le bouton ci-dessous pour choisir un nouveau mot de passe. Ce lien expire dans une heure.</p>
      <p style="text-align: center;">
        <a class="cta-button" href="%s">Réinitialiser mon mot de passe</a>
      </p>
      <p>Si vous n'êtes pas à l'origine de cette demande, ignorez simplement cet email. Votre mot de passe restera inchangé.</p>
    </div>
    <div class="footer">
      <p>Gestion Parc Auto — cet email a été envoyé automatiquement, merci de ne pas y répondre.</p>
    </div>
  </div>
</body>
</html>`, resetLink)
}

// ExpiringDocument is one line of the expiry notification email
type ExpiringDocument struct {
	Nom            string
	TypeDocument   string
	VehiculeID     string
	DateExpiration string
}

// RenderDocumentExpiry generates the HTML for the document expiry
// notification sent to fleet managers
func RenderDocumentExpiry(documents []ExpiringDocument) string {
	var rows strings.Builder
	for _, d := range documents {
		rows.WriteString(fmt.Sprintf(`<tr>
          <td>%s</td>
          <td>%s</td>
          <td>%s</td>
          <td>%s</td>
        </tr>`,
			html.EscapeString(d.Nom),
			html.EscapeString(d.TypeDocument),
			html.EscapeString(d.VehiculeID),
			html.EscapeString(d.DateExpiration)))
	}

	return fmt.Sprintf(`<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.0 Strict//EN" "http://www.w3.org/TR/xhtml1/DTD/xhtml1-strict.dtd">
<html xmlns="http://www.w3.org/1999/xhtml">
<head>
  <meta http-equiv="Content-Type" content="text/html; charset=utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1, minimum-scale=1, maximum-scale=1">
  <title>Documents à renouveler - Gestion Parc Auto</title>
  <style type="text/css">
    body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; margin: 0; padding: 0; background-color: #f3f4f6; }
    .container { max-width: 600px; margin: 0 auto; background-color: #ffffff; }
    .header { background: linear-gradient(135deg, #b45309 0%%, #92400e 100%%); padding: 40px 30px; text-align: center; }
    .header h1 { color: #fff; margin: 0; font-size: 24px; font-weight: 700; }
    .content { padding: 40px 30px; color: #374151; }
    table { width: 100%%; border-collapse: collapse; margin: 20px 0; }
    th { text-align: left; color: #92400e; border-bottom: 2px solid #e5e7eb; padding: 8px; font-size: 14px; }
    td { border-bottom: 1px solid #e5e7eb; padding: 8px; font-size: 14px; }
    .footer { padding: 30px; text-align: center; color: #6b7280; font-size: 12px; border-top: 1px solid #e5e7eb; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>Documents à renouveler</h1>
    </div>
    <div class="content">
      <p>Bonjour,</p>
      <p>Les documents suivants expirent dans les 30 prochains jours et doivent être renouvelés :</p>
      <table>
        <tr>
          <th>Document</th>
          <th>Type</th>
          <th>Véhicule</th>
          <th>Expiration</th>
        </tr>
        %s
      </table>
    </div>
    <div class="footer">
      <p>Gestion Parc Auto — cet email a été envoyé automatiquement, merci de ne pas y répondre.</p>
    </div>
  </div>
</body>
</html>`, rows.String())
}
