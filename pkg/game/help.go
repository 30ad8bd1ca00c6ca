package game

// HelpText is the static command reference shown for the help meta-action.
const HelpText = `🎮 GAME COMMANDS:
━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━

📍 LOOK (l)          - Look around current room
   look <direction>  - Look in specific direction (n/s/e/w)

🚶 MOVE (m)          - Move in a direction
   move <direction>  - Move north/south/east/west (n/s/e/w)

🤏 GRAB (g)          - Pick up an item
   grab <item>       - Grab specific item

🎒 INVENTORY (i)     - Show your inventory

🔧 USE (u)           - Use an item from inventory
   use <item>        - Use specific item

🔍 EXAMINE (x)       - Examine an item in detail
   examine <item>    - Get detailed item information

⚔️ FIGHT (f)         - Fight an enemy
   fight <enemy>     - Fight specific enemy

❓ HELP (h)          - Show this help
🚪 QUIT (q)          - Exit game

💡 TIP: You can use abbreviations!
   'm n' = 'move north', 'l e' = 'look east', etc.

━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━`
