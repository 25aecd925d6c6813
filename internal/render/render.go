// Package render produces the HTML fragments returned by the chat endpoint.
// Persistence always stores plain text; these helpers are applied only at the
// HTTP boundary, keeping "render" separate from "store".
package render

import (
	"fmt"
	"html"
)

// CrisisBlock is the fixed crisis-resources fragment returned whenever a
// crisis phrase is detected. It never varies with the input message.
const CrisisBlock = `
<div style="background: #ffe6e6; border-left: 4px solid #ff4444; padding: 15px; border-radius: 8px; margin: 10px 0;">
    <h3 style="color: #cc0000; margin-bottom: 10px;">🚨 Immediate Support Needed</h3>
    <p style="margin: 10px 0;">I'm concerned about what you're sharing. Your life has value.</p>
    <p style="margin: 10px 0;"><strong>Emergency Help:</strong></p>
    <ul style="margin: 10px 0; padding-left: 20px;">
        <li>Pakistan: Emergency 15 or 1122</li>
        <li>Mental Health: Umang Helpline 0317-6367833</li>
        <li>Crisis Text Line: Text HOME to 741741</li>
    </ul>
    <p style="margin: 10px 0;">Please reach out to a human counselor immediately.</p>
</div>
`

// AssistantBlock wraps a plain-text assistant reply in the standard green
// fragment. The text is HTML-escaped; markup never originates from model
// output.
func AssistantBlock(text string) string {
	return fmt.Sprintf(`
<div style="background: #f8fff8; border-left: 4px solid #10B981; padding: 15px; border-radius: 8px; margin: 10px 0;">
    <p style="color: #2c3e50; margin: 0; line-height: 1.5;">%s</p>
</div>
`, html.EscapeString(text))
}

// FallbackBlock wraps a plain-text reply in the amber fragment used when the
// AI collaborator fails.
func FallbackBlock(text string) string {
	return fmt.Sprintf(`
<div style="background: #fff8e7; border-left: 4px solid #f39c12; padding: 15px; border-radius: 8px; margin: 10px 0;">
    <p style="color: #2c3e50; margin: 0; line-height: 1.5;">%s</p>
</div>
`, html.EscapeString(text))
}
