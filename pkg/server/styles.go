package server

// DefaultStyles positions the hint panel and its anchor pointer. Pass more
// CSS with WithStyles to theme it.
const DefaultStyles = `
.qtip{box-sizing:border-box;padding:4px 6px;font:12px/16px sans-serif;color:#222;background:#fff;border:1px solid #8eaace;border-radius:3px;box-shadow:0 1px 4px rgba(0,0,0,.2);pointer-events:none;word-wrap:break-word}
.qtip-header{font-weight:bold;margin-bottom:4px}
.qtip-anchor{position:absolute;width:0;height:0;border:6px solid transparent}
.qtip-anchor-top{top:-12px;left:10px;border-bottom-color:#8eaace}
.qtip-anchor-bottom{bottom:-12px;left:10px;border-top-color:#8eaace}
.qtip-anchor-left{left:-12px;top:8px;border-right-color:#8eaace}
.qtip-anchor-right{right:-12px;top:8px;border-left-color:#8eaace}
`
